package querybuilder

import (
	"fmt"
	"strings"
)

// QueryBuilder assembles SQL with '?' placeholders; callers rebind for their driver
type QueryBuilder interface {
	Select(cols ...string) QueryBuilder
	From(table string) QueryBuilder
	Where(clause string, args ...interface{}) QueryBuilder
	And(clause string, args ...interface{}) QueryBuilder

	Insert(cols ...string) QueryBuilder
	Into(table string) QueryBuilder
	Values(values ...interface{}) QueryBuilder
	OnConflict(cols ...string) QueryBuilder
	DoUpdate(set string, args ...interface{}) QueryBuilder
	Returning(cols ...string) QueryBuilder

	Delete(table string) QueryBuilder

	Build() (string, []interface{})
}

type queryBuilder struct {
	schema     string
	table      string
	cols       []string
	conditions []Condition
	values     [][]interface{}
	onConflict []string
	doUpdate   *Condition
	returning  []string
	isDelete   bool
}

func NewQueryBuilder(schema string) QueryBuilder {
	return &queryBuilder{
		schema: schema,
	}
}

func (q *queryBuilder) Select(cols ...string) QueryBuilder {
	q.cols = append(q.cols, cols...)
	return q
}

func (q *queryBuilder) From(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Where(clause string, args ...interface{}) QueryBuilder {
	return q.And(clause, args...)
}

func (q *queryBuilder) And(clause string, args ...interface{}) QueryBuilder {
	q.conditions = append(q.conditions, Condition{clause: clause, args: args})
	return q
}

func (q *queryBuilder) Insert(cols ...string) QueryBuilder {
	q.cols = cols
	return q
}

func (q *queryBuilder) Into(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Values(values ...interface{}) QueryBuilder {
	q.values = append(q.values, values)
	return q
}

// OnConflict adds an ON CONFLICT target, resolved with DO NOTHING unless DoUpdate is set
func (q *queryBuilder) OnConflict(cols ...string) QueryBuilder {
	q.onConflict = cols
	return q
}

// DoUpdate sets the raw SET expression (and optional WHERE, written inline) of an upsert
func (q *queryBuilder) DoUpdate(set string, args ...interface{}) QueryBuilder {
	q.doUpdate = &Condition{clause: set, args: args}
	return q
}

func (q *queryBuilder) Returning(cols ...string) QueryBuilder {
	q.returning = cols
	return q
}

func (q *queryBuilder) Delete(table string) QueryBuilder {
	q.table = table
	q.isDelete = true
	return q
}

func (q *queryBuilder) qualifiedTable() string {
	if q.schema == "" {
		return q.table
	}
	return fmt.Sprintf("%s.%s", q.schema, q.table)
}

func buildCondition(conditions []Condition) (string, []interface{}) {
	parts := make([]string, 0, len(conditions))
	args := make([]interface{}, 0)
	for _, cond := range conditions {
		parts = append(parts, cond.clause)
		args = append(args, cond.args...)
	}
	return strings.Join(parts, " AND "), args
}

func (q *queryBuilder) Build() (string, []interface{}) {
	switch {
	case len(q.values) > 0:
		return q.buildInsert()
	case q.isDelete:
		return q.buildDelete()
	default:
		return q.buildSelect()
	}
}

func (q *queryBuilder) buildWhere(query string, args []interface{}) (string, []interface{}) {
	if len(q.conditions) == 0 {
		return query, args
	}
	condition, condArgs := buildCondition(q.conditions)
	return query + fmt.Sprintf(" WHERE %s", condition), append(args, condArgs...)
}

func (q *queryBuilder) buildSelect() (string, []interface{}) {
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(q.cols, ", "), q.qualifiedTable())
	return q.buildWhere(query, nil)
}

func (q *queryBuilder) buildInsert() (string, []interface{}) {
	args := make([]interface{}, 0, len(q.values)*len(q.cols))
	tuples := make([]string, 0, len(q.values))
	for _, row := range q.values {
		if len(row) != len(q.cols) {
			return "", nil
		}
		placeholders := make([]string, len(row))
		for i, val := range row {
			placeholders[i] = "?"
			args = append(args, val)
		}
		tuples = append(tuples, fmt.Sprintf("(%s)", strings.Join(placeholders, ", ")))
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		q.qualifiedTable(), strings.Join(q.cols, ", "), strings.Join(tuples, ", "))

	if len(q.onConflict) > 0 {
		query += fmt.Sprintf(" ON CONFLICT (%s)", strings.Join(q.onConflict, ", "))
		if q.doUpdate == nil {
			query += " DO NOTHING"
		} else {
			query += " DO UPDATE SET " + q.doUpdate.clause
			args = append(args, q.doUpdate.args...)
		}
	}

	if len(q.returning) > 0 {
		query += fmt.Sprintf(" RETURNING %s", strings.Join(q.returning, ", "))
	}
	return query, args
}

func (q *queryBuilder) buildDelete() (string, []interface{}) {
	query := fmt.Sprintf("DELETE FROM %s", q.qualifiedTable())
	return q.buildWhere(query, nil)
}
