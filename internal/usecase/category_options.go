package usecase

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/DRSN-tech/product-catalog/internal/domain"
)

const (
	NoCategoryLabel = "Choose category..."
	NoCategoryValue = "0"
)

// CategoryOptions строит список выбора категории: первым идёт пункт «категория не выбрана»,
// далее категории по возрастанию метки (побайтово, как COLLATE "C" в хранилище).
func (p *ProductUseCase) CategoryOptions(ctx context.Context) ([]CategoryOption, error) {
	types, err := p.store.ListProductTypes(ctx)
	if err != nil {
		return nil, err
	}

	sorted := slices.Clone(types)
	slices.SortStableFunc(sorted, func(a, b domain.ProductType) int {
		return strings.Compare(a.Label, b.Label)
	})

	options := make([]CategoryOption, 0, len(sorted)+1)
	options = append(options, NewCategoryOption(NoCategoryLabel, NoCategoryValue))
	for _, t := range sorted {
		value := strconv.FormatInt(t.ID, 10)
		if value == NoCategoryValue {
			p.logger.Warnf("Product type %q has reserved id 0, skipping", t.Label)
			continue
		}
		options = append(options, NewCategoryOption(t.Label, value))
	}

	return options, nil
}
