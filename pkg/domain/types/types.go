package types

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

type (
	OwnerID     string
	RepoName    string
	ContentRef  string
	BranchName  string
	RequestID   string
	Namespace   string
	GCSBucket   string
	GCPProject  string
	BQDatasetID string
	BQTableID   string
	SentryDSN   string
)

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

func (x RequestID) String() string { return string(x) }
func (x OwnerID) String() string { return string(x) }
func (x RepoName) String() string { return string(x) }
func (x ContentRef) String() string { return string(x) }
func (x BQTableID) String() string { return string(x) }
func (x BQDatasetID) String() string { return string(x) }
func (x GCPProject) String() string { return string(x) }
func (x GCSBucket) String() string { return string(x) }
func (x Namespace) String() string { return string(x) }

// IndexKey returns the key under which the repository is recorded in the
// owner's index namespace.
func (x RepoName) IndexKey() string {
	return string(x) + ".git"
}

// TrimRepoName strips a trailing ".git" from a URL path segment.
func TrimRepoName(segment string) RepoName {
	return RepoName(strings.TrimSuffix(segment, ".git"))
}

func (x SentryDSN) LogValue() slog.Value {
	if x == "" {
		return slog.StringValue("")
	}
	return slog.StringValue("***********")
}

// Service is a Smart-HTTP service name as it appears on the wire.
type Service string

const (
	ServiceUploadPack  Service = "git-upload-pack"
	ServiceReceivePack Service = "git-receive-pack"
)

// ParseService validates a service name against the allow-list.
func ParseService(raw string) (Service, error) {
	switch Service(raw) {
	case ServiceUploadPack, ServiceReceivePack:
		return Service(raw), nil
	}
	return "", ErrInvalidService
}

// SubCommand is the git subcommand that implements the service.
func (x Service) SubCommand() string {
	return strings.TrimPrefix(string(x), "git-")
}

func (x Service) AdvertisementContentType() string {
	return "application/x-" + string(x) + "-advertisement"
}

func (x Service) ResultContentType() string {
	return "application/x-" + string(x) + "-result"
}
