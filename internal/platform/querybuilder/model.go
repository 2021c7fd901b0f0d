package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// columnPlan is the ordered set of db-tagged exported fields of a struct type.
type columnPlan struct {
	columns []string
	fields  []int
}

var columnPlans sync.Map // reflect.Type -> columnPlan

// InsertModel builds an INSERT for every db-tagged field of model, followed by
// suffix.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, vals, err := modelColumns(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

// UpsertModel builds an INSERT that, on a conflict over conflictColumns,
// overwrites every other model column. touchColumns are set to NOW() on update.
func UpsertModel(table string, model any, conflictColumns []string, touchColumns ...string) (string, []any, error) {
	if len(conflictColumns) == 0 {
		return "", nil, fmt.Errorf("upsert into %s requires conflict columns", table)
	}
	cols, vals, err := modelColumns(model)
	if err != nil {
		return "", nil, err
	}

	keys := make(map[string]struct{}, len(conflictColumns))
	for _, c := range conflictColumns {
		keys[c] = struct{}{}
	}
	sets := make([]string, 0, len(cols)+len(touchColumns))
	for _, c := range cols {
		if _, ok := keys[c]; ok {
			continue
		}
		sets = append(sets, c+" = EXCLUDED."+c)
	}
	for _, c := range touchColumns {
		sets = append(sets, c+" = NOW()")
	}

	suffix := "ON CONFLICT (" + strings.Join(conflictColumns, ", ") + ") DO NOTHING"
	if len(sets) > 0 {
		suffix = "ON CONFLICT (" + strings.Join(conflictColumns, ", ") + ") DO UPDATE SET " + strings.Join(sets, ", ")
	}
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

func modelColumns(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	plan := planFor(value.Type())
	if len(plan.columns) == 0 {
		return nil, nil, fmt.Errorf("model %s has no db columns", value.Type())
	}
	vals := make([]any, len(plan.fields))
	for i, idx := range plan.fields {
		vals[i] = value.Field(idx).Interface()
	}
	return plan.columns, vals, nil
}

func planFor(typ reflect.Type) columnPlan {
	if cached, ok := columnPlans.Load(typ); ok {
		return cached.(columnPlan)
	}

	var plan columnPlan
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		plan.columns = append(plan.columns, name)
		plan.fields = append(plan.fields, i)
	}

	actual, _ := columnPlans.LoadOrStore(typ, plan)
	return actual.(columnPlan)
}
