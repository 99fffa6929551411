// Package derive computes the read-only derived fields of each record kind
// from its base fields. Computation is pure and memoized: identical base
// inputs share one cache entry regardless of which record they came from.
package derive

import (
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/finsheet/finsheet/internal/model"
)

// cacheSize bounds the memo. The source never evicted; a bounded LRU keeps
// the sharing behavior without process-lifetime growth.
const cacheSize = 1024

// Engine memoizes derived-field computation per record kind.
type Engine struct {
	cache *lru.Cache[string, map[string]float64]
}

// NewEngine creates an engine with its memo cache.
func NewEngine() *Engine {
	cache, _ := lru.New[string, map[string]float64](cacheSize)
	return &Engine{cache: cache}
}

// Recompute writes every derived field of rec in place, leaving all base
// fields untouched. Records of kinds without derived fields pass through
// unchanged.
func (e *Engine) Recompute(kind model.Kind, rec model.Record) {
	inputs := inputFields(kind)
	if len(inputs) == 0 {
		return
	}

	key := memoKey(kind, rec, inputs)
	derived, hit := e.cache.Get(key)
	if !hit {
		derived = compute(kind, rec)
		e.cache.Add(key, derived)
	}
	for name, value := range derived {
		rec[name] = value
	}
}

// inputFields lists the base fields a kind's derivation reads, in the
// order used to build the memo key.
func inputFields(kind model.Kind) []string {
	switch kind {
	case model.KindBudget:
		return []string{"monthlyCost"}
	case model.KindProjectTracking:
		return []string{"salary", "startDate", "endedDate", "resources", "projectCost", "collectAmount"}
	case model.KindSubscriptionRevenue:
		return []string{"projectedMonthlyRevenue"}
	default:
		return nil
	}
}

// memoKey encodes the exact raw input values, including field absence, so
// an absent resources field (default 1 in the day math) never collides
// with an explicit zero.
func memoKey(kind model.Kind, rec model.Record, inputs []string) string {
	var b strings.Builder
	b.WriteString(string(kind))
	for _, f := range inputs {
		b.WriteByte('|')
		if !rec.Has(f) {
			b.WriteByte('~')
			continue
		}
		switch v := rec[f].(type) {
		case string:
			b.WriteString(v)
		case float64:
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		default:
			b.WriteString(strconv.FormatFloat(rec.Number(f), 'g', -1, 64))
		}
	}
	return b.String()
}

func compute(kind model.Kind, rec model.Record) map[string]float64 {
	switch kind {
	case model.KindBudget:
		return computeBudget(rec)
	case model.KindProjectTracking:
		return computeProjectTracking(rec)
	case model.KindSubscriptionRevenue:
		return computeSubscriptionRevenue(rec)
	default:
		return nil
	}
}
