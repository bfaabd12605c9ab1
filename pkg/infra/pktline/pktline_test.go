package pktline_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/degit-io/degit-riptide/pkg/infra/pktline"
	"github.com/m-mizutani/gt"
)

func TestFrame(t *testing.T) {
	testCases := []string{
		"# service=git-upload-pack\n",
		"# service=git-receive-pack\n",
		"a",
		"hello world\n",
		strings.Repeat("x", 1000),
	}

	for _, s := range testCases {
		t.Run(fmt.Sprintf("len %d", len(s)), func(t *testing.T) {
			frame := gt.R1(pktline.Frame(s)).NoError(t)
			gt.V(t, string(frame[:4])).Equal(fmt.Sprintf("%04x", len(s)+4))
			gt.V(t, len(frame)).Equal(len(s) + 4)

			payloads := gt.R1(pktline.Decode(bytes.NewReader(frame))).NoError(t)
			gt.A(t, payloads).Length(1)
			gt.V(t, string(payloads[0])).Equal(s)
		})
	}
}

func TestServiceAnnouncement(t *testing.T) {
	t.Run("upload-pack", func(t *testing.T) {
		b := gt.R1(pktline.ServiceAnnouncement(types.ServiceUploadPack)).NoError(t)
		gt.V(t, string(b)).Equal("001e# service=git-upload-pack\n0000")
	})

	t.Run("receive-pack", func(t *testing.T) {
		b := gt.R1(pktline.ServiceAnnouncement(types.ServiceReceivePack)).NoError(t)
		gt.V(t, string(b)).Equal("001f# service=git-receive-pack\n0000")
	})
}

func TestDecodeFlush(t *testing.T) {
	payloads := gt.R1(pktline.Decode(strings.NewReader("0006a\n0000"))).NoError(t)
	gt.A(t, payloads).Length(2)
	gt.V(t, string(payloads[0])).Equal("a\n")
	gt.V(t, len(payloads[1])).Equal(0)
}

func TestDecodeInvalid(t *testing.T) {
	_, err := pktline.Decode(strings.NewReader("zzzzabc"))
	gt.Error(t, err)
}
