package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/DRSN-tech/product-catalog/internal/usecase"
	"github.com/DRSN-tech/product-catalog/pkg/e"
	"github.com/jimlawless/whereami"
)

const imageField = "image"

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// ToHTTPResponse сопоставляет ошибку слоя usecase с HTTP-статусом и текстом для клиента.
func ToHTTPResponse(err error) (int, string) {
	var storeErr *e.StoreError

	switch {
	case errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound, e.ErrNotFound.Error()
	case errors.Is(err, e.ErrUnauthenticated):
		return http.StatusUnauthorized, e.ErrUnauthenticated.Error()
	case errors.Is(err, e.ErrValidation):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, e.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, e.ErrFileTooLarge.Error()
	case errors.Is(err, e.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, e.ErrUnsupportedMediaType.Error()
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.As(err, &storeErr) && storeErr.IsConstraintViolation():
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	WriteSuccess(w, code, NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// parseCreateForm читает форму создания товара из urlencoded или multipart тела.
// Значения не проверяются: это делает usecase.
func parseCreateForm(r *http.Request, maxMemory, maxImageSize int64) (*usecase.CreateProductForm, error) {
	contentType := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(contentType, "multipart/form-data"):
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), requestBodyError(err))
		}
	case strings.HasPrefix(contentType, "application/x-www-form-urlencoded"):
		if err := r.ParseForm(); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), requestBodyError(err))
		}
	default:
		return nil, e.Wrap(contentType, e.ErrStatusBadRequest)
	}

	form := &usecase.CreateProductForm{
		Title:         r.PostFormValue("title"),
		Description:   r.PostFormValue("description"),
		Price:         r.PostFormValue("price"),
		Quantity:      r.PostFormValue("quantity"),
		ProductTypeID: r.PostFormValue("product_type_id"),
	}

	if r.MultipartForm != nil {
		if files := r.MultipartForm.File[imageField]; len(files) > 0 {
			image, err := readImage(files[0], maxImageSize)
			if err != nil {
				return nil, err
			}
			form.Image = image
		}
	}

	return form, nil
}

func requestBodyError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return e.ErrFileTooLarge
	}

	return errors.Join(e.ErrStatusBadRequest, err)
}

// readImage читает файл и определяет его тип по содержимому, а не по заголовку клиента.
func readImage(fh *multipart.FileHeader, maxSize int64) (*usecase.ProductImage, error) {
	if fh.Size > maxSize {
		return nil, e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return nil, e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return usecase.NewProductImage(data, mimeType, int64(len(data)), fh.Filename), nil
}
