package types

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidOption    = goerr.New("invalid option")
	ErrValidationFailed = goerr.New("validation failed")

	ErrInvalidService   = goerr.New("invalid service")
	ErrInvalidIdentity  = goerr.New("invalid repository identity")
	ErrRepoNotFound     = goerr.New("repository not found")
	ErrRefNotFound      = goerr.New("branch or path not found")
	ErrRepoResolution   = goerr.New("repository resolution failed")
	ErrServiceFailure   = goerr.New("git service failed")
	ErrPublishFailure   = goerr.New("publish failed")
	ErrCorruptedContent = goerr.New("corrupted content")
)
