package repository

import (
	"fmt"
	"strings"

	"github.com/pratham-associates/listings/internal/models"
)

// placeholderFunc renders the n-th (1-based) bind parameter of a dialect.
type placeholderFunc func(n int) string

func dollarPlaceholder(n int) string { return fmt.Sprintf("$%d", n) }

func questionPlaceholder(int) string { return "?" }

type queryBuilder struct {
	conditions  []string
	args        []interface{}
	placeholder placeholderFunc
}

func newQueryBuilder(placeholder placeholderFunc) *queryBuilder {
	return &queryBuilder{
		conditions:  []string{"available = TRUE"},
		args:        make([]interface{}, 0),
		placeholder: placeholder,
	}
}

func (qb *queryBuilder) addCondition(condition string, column string, arg interface{}) {
	qb.args = append(qb.args, arg)
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, column, qb.placeholder(len(qb.args))))
}

func (qb *queryBuilder) build() (string, []interface{}) {
	return "WHERE " + strings.Join(qb.conditions, " AND "), qb.args
}

// applyFilters pushes the exact-match criteria into the WHERE clause.
// Location and price bounds need the same case folding and price parsing as
// the in-process store, so they are left to models.FilterProperties.
func applyFilters(filters models.PropertyFilters, placeholder placeholderFunc) (string, []interface{}) {
	qb := newQueryBuilder(placeholder)

	if filters.PriceType != "" {
		qb.addCondition("%s = %s", "price_type", filters.PriceType)
	}
	if filters.PropertyType != "" {
		qb.addCondition("%s = %s", "property_type", filters.PropertyType)
	}
	if filters.Bedrooms != nil {
		qb.addCondition("%s = %s", "bedrooms", *filters.Bedrooms)
	}

	return qb.build()
}
