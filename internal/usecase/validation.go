package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/DRSN-tech/product-catalog/internal/domain"
	"github.com/DRSN-tech/product-catalog/pkg/e"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	fieldForm          = "form"
	fieldPrice         = "price"
	fieldQuantity      = "quantity"
	fieldProductTypeID = "product_type_id"
	fieldImage         = "image"
)

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
}

// newFormValidator возвращает валидатор, который называет поля по тегу form.
func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// validateProductForm проверяет все поля формы, кроме владельца, и собирает товар.
func (p *ProductUseCase) validateProductForm(form *CreateProductForm) (*domain.Product, e.ValidationErrors) {
	errs := e.ValidationErrors{}
	if form == nil {
		errs.Add(fieldForm, "is required")
		return nil, errs
	}

	in := CreateProductForm{
		Title:         strings.TrimSpace(form.Title),
		Description:   strings.TrimSpace(form.Description),
		Price:         strings.TrimSpace(form.Price),
		Quantity:      strings.TrimSpace(form.Quantity),
		ProductTypeID: strings.TrimSpace(form.ProductTypeID),
	}

	if err := p.validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			errs.Add(fieldForm, err.Error())
			return nil, errs
		}
		for _, fe := range fieldErrs {
			errs.Add(fe.Field(), validationMessage(fe))
		}
	}

	var price int64
	if in.Price != "" {
		cents, err := parsePriceToCents(in.Price)
		if err != nil {
			errs.Add(fieldPrice, err.Error())
		}
		price = cents
	}

	var quantity int64
	if in.Quantity != "" {
		q, err := strconv.ParseInt(in.Quantity, 10, 32)
		switch {
		case err != nil:
			errs.Add(fieldQuantity, "must be an integer")
		case q < 0:
			errs.Add(fieldQuantity, "must not be negative")
		}
		quantity = q
	}

	var productTypeID int64
	if in.ProductTypeID != "" {
		// product_types.id — INTEGER, значения вне int32 не могут ссылаться на категорию
		id, err := strconv.ParseInt(in.ProductTypeID, 10, 32)
		switch {
		case errors.Is(err, strconv.ErrRange):
			errs.Add(fieldProductTypeID, "is out of range")
		case err != nil:
			errs.Add(fieldProductTypeID, "must be an integer")
		case id == 0:
			// "0" — пункт «категория не выбрана», форма не заполнена
			errs.Add(fieldProductTypeID, "choose a category")
		case id < 0:
			errs.Add(fieldProductTypeID, "is invalid")
		}
		productTypeID = id
	}

	if img := form.Image; img != nil {
		if len(img.Data) == 0 {
			errs.Add(fieldImage, "is empty")
		} else if _, ok := allowedImageTypes[img.MimeType]; !ok {
			errs.Add(fieldImage, e.ErrUnsupportedMediaType.Error())
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return domain.NewProduct(in.Title, in.Description, price, int32(quantity), productTypeID), nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// parsePriceToCents converts a string like "599.99" or "600" to int64 cents.
// Returns error if:
// - invalid format
// - more than 2 decimal places
// - negative value
// - exceeds 10^9 units
func parsePriceToCents(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if d.IsNegative() {
		return 0, e.ErrInvalidPrice
	}

	maxPrice := decimal.NewFromInt(1_000_000_000)
	if d.GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPrice
	}

	if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
		return 0, e.ErrPricePrecision
	}

	return d.Shift(2).Round(0).IntPart(), nil
}
