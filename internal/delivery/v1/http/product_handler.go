package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/DRSN-tech/product-catalog/internal/usecase"
	"github.com/DRSN-tech/product-catalog/pkg/e"
	"github.com/DRSN-tech/product-catalog/pkg/logger"
	"github.com/go-chi/chi/v5"
)

const (
	maxTotalRequestSize = 20 << 20
	maxMemory           = 8 << 20
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
	maxImageSize   int64
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger, maxImageSize int64) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger, maxImageSize: maxImageSize}
}

// listProducts
//
//	@Summary	Список товаров
//	@Tags		products
//	@Produce	json
//	@Success	200	{array}		ProductResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := p.productUsecase.Index(r.Context())
	if err != nil {
		p.logger.Errorf(err, "failed to list products")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrProductResponse(products))
}

// productTypeCounts
//
//	@Summary		Количество товаров по категориям
//	@Description	Категории без товаров не возвращаются
//	@Tags			products
//	@Produce		json
//	@Success		200	{array}		ProductTypeCountResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/products/types [get]
func (p *ProductHandler) productTypeCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := p.productUsecase.TypeCounts(r.Context())
	if err != nil {
		p.logger.Errorf(err, "failed to count products by type")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrTypeCountResponse(counts))
}

// newProductForm
//
//	@Summary	Данные для формы создания товара
//	@Tags		products
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	CategoryOptionsResponse
//	@Failure	401	{object}	ErrorResponse
//	@Router		/products/new [get]
func (p *ProductHandler) newProductForm(w http.ResponseWriter, r *http.Request) {
	options, err := p.productUsecase.CategoryOptions(r.Context())
	if err != nil {
		p.logger.Errorf(err, "failed to build category options")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, CategoryOptionsResponse{CategoryOptions: options})
}

// createProduct
//
//	@Summary		Создание товара
//	@Description	Владельцем становится текущий пользователь
//	@Tags			products
//	@Accept			multipart/form-data
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Security		BearerAuth
//	@Param			title			formData	string	true	"Название"
//	@Param			description		formData	string	true	"Описание"
//	@Param			price			formData	string	true	"Цена"
//	@Param			quantity		formData	integer	true	"Количество"
//	@Param			product_type_id	formData	integer	true	"Категория"
//	@Param			image			formData	file	false	"Изображение"
//	@Success		201				{object}	ProductResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		401				{object}	ErrorResponse
//	@Failure		422				{object}	ValidationErrorResponse
//	@Failure		500				{object}	ErrorResponse
//	@Router			/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	form, err := parseCreateForm(r, maxMemory, p.maxImageSize)
	if err != nil {
		p.logger.Warnf("invalid create request: %v", err)
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.CreateProduct(r.Context(), form)
	if err != nil {
		var verrs e.ValidationErrors
		if errors.As(err, &verrs) {
			p.writeValidationError(w, r, verrs)
			return
		}

		p.logger.Warnf("failed to create product: %v", err)
		WriteError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/products/"+strconv.FormatInt(product.ID, 10))
	WriteSuccess(w, http.StatusCreated, toProductResponse(product))
}

// writeValidationError отвечает 422 с ошибками полей и заново построенным списком категорий.
func (p *ProductHandler) writeValidationError(w http.ResponseWriter, r *http.Request, verrs e.ValidationErrors) {
	options, err := p.productUsecase.CategoryOptions(r.Context())
	if err != nil {
		p.logger.Errorf(err, "failed to build category options")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
		Errors:          verrs,
		CategoryOptions: options,
	})
}

// productDetail
//
//	@Summary	Карточка товара с владельцем
//	@Tags		products
//	@Produce	json
//	@Param		id	path		integer	true	"ID товара"
//	@Success	200	{object}	ProductResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/products/{id} [get]
func (p *ProductHandler) productDetail(w http.ResponseWriter, r *http.Request) {
	var id *int64
	if v, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64); err == nil {
		id = &v
	}

	product, err := p.productUsecase.Detail(r.Context(), id)
	if err != nil {
		if !errors.Is(err, e.ErrNotFound) {
			p.logger.Errorf(err, "failed to load product")
		}
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}
