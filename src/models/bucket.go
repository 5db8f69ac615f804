package models

import (
	"fmt"
	"strings"
)

// Bucket is the top-level economic role of a transaction.
type Bucket string

const (
	BucketIncome     Bucket = "income"
	BucketExpenses   Bucket = "expenses"
	BucketDebt       Bucket = "debt"
	BucketInvested   Bucket = "invested"
	BucketCash       Bucket = "cash"
	BucketDisposable Bucket = "disposable"
	BucketExcluded   Bucket = "excluded"
)

var AllBuckets = []Bucket{
	BucketIncome, BucketExpenses, BucketDebt, BucketInvested, BucketCash, BucketDisposable, BucketExcluded,
}

func ParseBucket(s string) (Bucket, error) {
	b := Bucket(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllBuckets {
		if b == known {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown bucket %q", s)
}
