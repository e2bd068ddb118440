package postgresadapter

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// PrefixedIDGenerator creates opaque identifiers such as stream_1f2e3d4c5b6a.
type PrefixedIDGenerator struct{}

func (PrefixedIDGenerator) NewID(_ context.Context, prefix string) (string, error) {
	compact := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + compact[:12], nil
}
