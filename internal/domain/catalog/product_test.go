package catalog

import (
	"testing"

	domainErrors "github.com/cassiomorais/storefront/internal/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid hex object id", primitive.NewObjectID().Hex(), false},
		{"valid with surrounding whitespace", " " + primitive.NewObjectID().Hex() + " ", false},
		{"empty", "", true},
		{"too short", "abc123", true},
		{"non-hex characters", "zzzzzzzzzzzzzzzzzzzzzzzz", true},
		{"arbitrary string", "not-an-object-id", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)
			if tt.wantErr {
				assert.ErrorIs(t, err, domainErrors.ErrInvalidProductID)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProductValidate(t *testing.T) {
	p := &Product{Name: "Classic Tee", Price: 2000}
	assert.NoError(t, p.Validate())
}

func TestProductValidate_BlankName(t *testing.T) {
	p := &Product{Name: "   ", Price: 2000}
	var vErr *domainErrors.ValidationError
	require.ErrorAs(t, p.Validate(), &vErr)
	assert.Equal(t, "name", vErr.Field)
}

func TestProductValidate_NegativePrice(t *testing.T) {
	p := &Product{Name: "Classic Tee", Price: -5}
	var vErr *domainErrors.ValidationError
	require.ErrorAs(t, p.Validate(), &vErr)
	assert.Equal(t, "price", vErr.Field)
}

func TestProductPatchEmpty(t *testing.T) {
	assert.True(t, ProductPatch{}.Empty())

	name := "Renamed"
	assert.False(t, ProductPatch{Name: &name}.Empty())
	assert.False(t, ProductPatch{Colors: []string{"red"}}.Empty())
}
