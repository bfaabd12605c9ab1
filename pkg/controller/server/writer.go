package server

import (
	"errors"
	"net/http"

	"github.com/degit-io/degit-riptide/pkg/domain/interfaces"
)

// exchangeWriter streams a Smart-HTTP response. Start sends the headers and
// every write is flushed to the client at once.
type exchangeWriter struct {
	w           http.ResponseWriter
	rc          *http.ResponseController
	contentType string
	started     bool
}

var _ interfaces.ExchangeWriter = (*exchangeWriter)(nil)

func newExchangeWriter(w http.ResponseWriter, contentType string) *exchangeWriter {
	return &exchangeWriter{
		w:           w,
		rc:          http.NewResponseController(w),
		contentType: contentType,
	}
}

func (x *exchangeWriter) Start() error {
	if x.started {
		return nil
	}
	x.started = true

	h := x.w.Header()
	h.Set("Content-Type", x.contentType)
	h.Set("Expires", "Fri, 01 Jan 1980 00:00:00 GMT")
	h.Set("Pragma", "no-cache")
	h.Set("Cache-Control", "no-cache, max-age=0, must-revalidate")
	x.w.WriteHeader(http.StatusOK)
	return x.flush()
}

func (x *exchangeWriter) Write(p []byte) (int, error) {
	if !x.started {
		if err := x.Start(); err != nil {
			return 0, err
		}
	}

	n, err := x.w.Write(p)
	if err != nil {
		return n, err
	}
	return n, x.flush()
}

func (x *exchangeWriter) flush() error {
	if err := x.rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return err
	}
	return nil
}

func (x *exchangeWriter) Started() bool {
	return x.started
}
