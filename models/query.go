package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jinzhu/gorm"
)

type QueryFilter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

type ConferenceQueryForm struct {
	Filters []QueryFilter `json:"filters"`
}

var operators = map[string]string{
	"EQ":   "=",
	"GT":   ">",
	"GTEQ": ">=",
	"LT":   "<",
	"LTEQ": "<=",
	"NE":   "<>",
}

var queryFields = map[string]string{
	"CITY":          "city",
	"TOPIC":         "topics",
	"MONTH":         "month",
	"MAX_ATTENDEES": "max_attendees",
}

var intFields = map[string]bool{
	"month":         true,
	"max_attendees": true,
}

type queryClause struct {
	condition string
	value     interface{}
}

var (
	ErrInvalidFilter            = errors.New("filter contains invalid field or operator")
	ErrMultipleInequalityFields = errors.New("inequality filter is allowed on only one field")
)

// formatFilters validates user supplied filters and translates them to
// SQL clauses. The store permits inequality operators on at most one
// field per query; a second inequality field is rejected here rather
// than failing downstream.
func formatFilters(filters []QueryFilter) (string, []queryClause, error) {
	var clauses []queryClause
	inequalityField := ""

	for _, f := range filters {
		column, ok := queryFields[f.Field]
		if !ok {
			return "", nil, ErrInvalidFilter
		}
		op, ok := operators[f.Operator]
		if !ok {
			return "", nil, ErrInvalidFilter
		}

		if op != "=" {
			if inequalityField != "" && inequalityField != column {
				return "", nil, ErrMultipleInequalityFields
			}
			inequalityField = column
		}

		var value interface{} = f.Value
		if intFields[column] {
			n, err := strconv.Atoi(f.Value)
			if err != nil {
				return "", nil, ErrInvalidFilter
			}
			value = n
		}

		if column == "topics" {
			// array containment, not a scalar comparison
			switch op {
			case "=":
				clauses = append(clauses, queryClause{"? = ANY (topics)", value})
			case "<>":
				clauses = append(clauses, queryClause{"NOT (? = ANY (topics))", value})
			default:
				return "", nil, ErrInvalidFilter
			}
			continue
		}

		clauses = append(clauses, queryClause{fmt.Sprintf("%s %s ?", column, op), value})
	}

	return inequalityField, clauses, nil
}

// BuildConferenceQuery applies the form's filters to db. When an
// inequality field is present the result is sorted on it first, then on
// name, matching the store's ordering rule for inequality queries.
func BuildConferenceQuery(db *gorm.DB, form ConferenceQueryForm) (*gorm.DB, error) {
	inequalityField, clauses, err := formatFilters(form.Filters)
	if err != nil {
		return nil, err
	}

	query := db
	for _, clause := range clauses {
		query = query.Where(clause.condition, clause.value)
	}
	if inequalityField != "" {
		query = query.Order(inequalityField)
	}
	return query.Order("name"), nil
}

func QueryConferencesHandler(w http.ResponseWriter, r *http.Request) {
	var form ConferenceQueryForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	query, err := BuildConferenceQuery(DB, form)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conferences := Conferences{}
	if err := query.Find(&conferences).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	jsn, _ := json.Marshal(conferences)
	_, _ = w.Write(jsn)
}
