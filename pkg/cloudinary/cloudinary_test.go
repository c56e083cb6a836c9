package cloudinary

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(Config{CloudName: "demo"}, zerolog.Nop())
	require.Error(t, err)

	svc, err := New(Config{CloudName: "demo", APIKey: "key", APISecret: "secret", Folder: "erp-files"}, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, svc)
}

func TestPublicIDJoinsFolder(t *testing.T) {
	require.Equal(t, "erp-files/receipts/AAI101_ab.pdf", PublicID("/erp-files/", "receipts/AAI101_ab.pdf"))
	require.Equal(t, "attendance-sources/1_a.csv", PublicID("", "/attendance-sources/1_a.csv"))
}

func TestResourceType(t *testing.T) {
	require.Equal(t, "image", ResourceType("application/pdf"))
	require.Equal(t, "image", ResourceType("image/png"))
	require.Equal(t, "raw", ResourceType("text/csv"))
	require.Equal(t, "raw", ResourceType(""))
}
