// Package idgen allocates human-readable primary keys of the form PREFIX-NNNNNN.
//
// The next number is derived from the highest existing key of the same
// prefix, so callers must allocate and insert inside one transaction and
// rely on the primary key constraint to reject a concurrent duplicate.
package idgen

import (
	"fmt"
	"regexp"
	"strconv"
)

// Width is the minimum number of digits in an allocated key.
const Width = 6

const (
	PrefixUser           = "US"
	PrefixSettings       = "ST"
	PrefixAgencyService  = "SV"
	PrefixQuotation      = "QT"
	PrefixQuotationItem  = "QI"
	PrefixVoucher        = "VC"
	PrefixContract       = "CN"
	PrefixContractClause = "CL"
	PrefixFreelancer     = "FL"
	PrefixFreelanceWork  = "WK"
	PrefixSMSLog         = "SL"
)

// Max returns the highest number among keys matching ^PREFIX-(\d+)$, or 0.
func Max(prefix string, existing []string) int64 {
	pattern := regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + `-(\d+)$`)
	var max int64
	for _, key := range existing {
		m := pattern.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max
}

// Next returns the key following the highest existing key for prefix.
func Next(prefix string, existing []string) string {
	return Format(prefix, Max(prefix, existing)+1)
}

func Format(prefix string, n int64) string {
	return fmt.Sprintf("%s-%0*d", prefix, Width, n)
}

// Sequence hands out consecutive keys after a single scan of existing keys.
type Sequence struct {
	prefix string
	last   int64
}

func NewSequence(prefix string, existing []string) *Sequence {
	return &Sequence{prefix: prefix, last: Max(prefix, existing)}
}

func (s *Sequence) Next() string {
	s.last++
	return Format(s.prefix, s.last)
}
