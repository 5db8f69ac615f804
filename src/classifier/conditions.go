package classifier

import (
	"encoding/json"
	"fmt"
	"strings"

	"budgee-insights/src/models"
)

// UserRule is a compiled user bucket rule.
type UserRule struct {
	Name      string
	Condition models.Condition
	Bucket    models.Bucket
}

// CompileBucketRule decodes one stored rule.
func CompileBucketRule(r models.BucketRule) (UserRule, error) {
	var cond models.Condition
	if err := json.Unmarshal(r.Conditions, &cond); err != nil {
		return UserRule{}, fmt.Errorf("rule %q conditions: %w", r.Name, err)
	}
	if cond.Field == "" && len(cond.And) == 0 && len(cond.Or) == 0 {
		return UserRule{}, fmt.Errorf("rule %q has no conditions", r.Name)
	}
	if _, err := models.ParseBucket(string(r.Bucket)); err != nil {
		return UserRule{}, err
	}
	return UserRule{Name: r.Name, Condition: cond, Bucket: r.Bucket}, nil
}

// CompileBucketRules decodes stored rules, skipping any that do not compile.
func CompileBucketRules(rules []models.BucketRule) []UserRule {
	out := make([]UserRule, 0, len(rules))
	for _, r := range rules {
		rule, err := CompileBucketRule(r)
		if err != nil {
			continue
		}
		out = append(out, rule)
	}
	return out
}

func (r UserRule) Matches(tx models.Transaction) bool {
	return evaluateCondition(r.Condition, tx)
}

func (r UserRule) asRule() Rule {
	return Rule{
		Name: RuleUserRule,
		Apply: func(tx models.Transaction) (models.Bucket, bool) {
			return r.Bucket, r.Matches(tx)
		},
	}
}

func evaluateCondition(cond models.Condition, tx models.Transaction) bool {
	// Logical AND
	if len(cond.And) > 0 {
		for _, c := range cond.And {
			if !evaluateCondition(c, tx) {
				return false
			}
		}
		return true
	}
	// Logical OR
	if len(cond.Or) > 0 {
		for _, c := range cond.Or {
			if evaluateCondition(c, tx) {
				return true
			}
		}
		return false
	}

	var fieldValue interface{}
	switch cond.Field {
	case "name":
		fieldValue = tx.Name
	case "merchant_name":
		fieldValue = tx.Merchant()
	case "amount":
		fieldValue = tx.Amount
	case "account":
		fieldValue = tx.AccountID
	case "category":
		fieldValue = strings.Join(tx.Categories, " ")
	case "primary_category":
		if tx.Structured == nil {
			fieldValue = ""
		} else {
			fieldValue = string(tx.Structured.Primary)
		}
	case "detailed_category":
		if tx.Structured == nil {
			fieldValue = ""
		} else {
			fieldValue = tx.Structured.Detailed
		}
	default:
		return false
	}

	switch cond.Op {
	case "equals":
		switch v := fieldValue.(type) {
		case string:
			val, ok := cond.Value.(string)
			return ok && strings.EqualFold(v, val)
		case float64:
			val, ok := cond.Value.(float64)
			return ok && v == val
		default:
			return false
		}
	case "contains":
		s, ok := fieldValue.(string)
		val, ok2 := cond.Value.(string)
		return ok && ok2 && strings.Contains(strings.ToLower(s), strings.ToLower(val))
	case "gte", "lte", "gt", "lt":
		f, ok := fieldValue.(float64)
		val, ok2 := cond.Value.(float64)
		if !ok || !ok2 {
			return false
		}
		switch cond.Op {
		case "gte":
			return f >= val
		case "lte":
			return f <= val
		case "gt":
			return f > val
		default:
			return f < val
		}
	case "in":
		s, ok := fieldValue.(string)
		arr, ok2 := cond.Value.([]interface{})
		if ok && ok2 {
			for _, v := range arr {
				if str, ok := v.(string); ok && strings.EqualFold(s, str) {
					return true
				}
			}
		}
		return false
	default:
		return false
	}
}
