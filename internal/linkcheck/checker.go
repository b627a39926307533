// Package linkcheck probes product referral links on a schedule and writes
// the outcome back onto each record. Dead affiliate links are the catalog's
// main rot mode; the admin dashboard surfaces the counts.
package linkcheck

import (
	"time"

	"github.com/guonaihong/gout"
	"go.uber.org/zap"

	"github.com/prayani09/ShriyashWork/internal/domain"
	"github.com/prayani09/ShriyashWork/internal/store"
)

// Link states written back to product records.
const (
	StatusOK     = "ok"
	StatusBroken = "broken"
	StatusError  = "error"
)

type Checker struct {
	store   *store.Store
	timeout time.Duration
}

func NewChecker(st *store.Store, timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Checker{store: st, timeout: timeout}
}

// Run walks the current catalog once. Probe failures mark the record and
// move on; the job itself never fails.
func (ck *Checker) Run() {
	snap, err := ck.store.SnapshotAt(store.ProductsPath)
	if err != nil {
		zap.S().Warnf("link check skipped: %v", err)
		return
	}

	checked, broken := 0, 0
	for id, rec := range snap {
		link, _ := rec["referralLink"].(string)
		if link == "" {
			continue
		}
		status := ck.probe(link)
		if status != StatusOK {
			broken++
		}
		err := ck.store.Update(store.ProductsPath+"/"+id, domain.Record{
			"linkStatus":    status,
			"linkCheckedAt": time.Now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			zap.S().Warnf("link check write failed for %s: %v", id, err)
		}
		checked++
	}
	zap.S().Infof("link check done: %d checked, %d not ok", checked, broken)
}

func (ck *Checker) probe(link string) string {
	var code int
	err := gout.GET(link).
		SetTimeout(ck.timeout).
		Code(&code).
		Do()
	if err != nil {
		return StatusError
	}
	if code >= 200 && code < 400 {
		return StatusOK
	}
	return StatusBroken
}
