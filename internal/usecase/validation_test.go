package usecase

import (
	"strings"
	"testing"

	"github.com/DRSN-tech/product-catalog/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceToCents(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr error
	}{
		{"0", 0, nil},
		{"600", 60000, nil},
		{"599.99", 59999, nil},
		{"0.5", 50, nil},
		{"1.230", 123, nil},
		{"1000000000", 100000000000, nil},
		{"1.234", 0, e.ErrPricePrecision},
		{"-0.01", 0, e.ErrInvalidPrice},
		{"1000000000.01", 0, e.ErrInvalidPrice},
		{"12,5", 0, e.ErrInvalidPrice},
		{"", 0, e.ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePriceToCents(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateProductFormTrimsInput(t *testing.T) {
	uc, _ := newTestUC(newFakeStore(), &testOwner)

	product, verrs := uc.validateProductForm(&CreateProductForm{
		Title:         "  Hammer ",
		Description:   " Steel ",
		Price:         " 12.50 ",
		Quantity:      " 7 ",
		ProductTypeID: " 2 ",
	})
	require.Nil(t, verrs)

	assert.Equal(t, "Hammer", product.Title)
	assert.Equal(t, "Steel", product.Description)
	assert.Equal(t, int64(1250), product.Price)
	assert.Equal(t, int32(7), product.Quantity)
	assert.Equal(t, int64(2), product.ProductTypeID)
}

func TestValidateProductFormLengthLimits(t *testing.T) {
	uc, _ := newTestUC(newFakeStore(), &testOwner)

	form := validForm()
	form.Title = strings.Repeat("я", 55)
	form.Description = strings.Repeat("b", 255)

	_, verrs := uc.validateProductForm(form)
	assert.Nil(t, verrs)

	form.Description = strings.Repeat("b", 256)
	_, verrs = uc.validateProductForm(form)
	require.NotNil(t, verrs)
	assert.Equal(t, "must be at most 255 characters", verrs["description"])
}

func TestValidateProductFormCategoryRange(t *testing.T) {
	uc, _ := newTestUC(newFakeStore(), &testOwner)

	form := validForm()
	form.ProductTypeID = "2147483647"
	product, verrs := uc.validateProductForm(form)
	require.Nil(t, verrs)
	assert.Equal(t, int64(2147483647), product.ProductTypeID)

	form.ProductTypeID = "3000000000"
	_, verrs = uc.validateProductForm(form)
	require.NotNil(t, verrs)
	assert.Equal(t, "is out of range", verrs["product_type_id"])
}
