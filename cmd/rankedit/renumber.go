package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rankeditor/backend/internal/application/rankedit"
	"github.com/rankeditor/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// payBandRenumberer names a parent's pay bands "<Parent> I", "<Parent> II", ...
// in list order whenever the bands change.
type payBandRenumberer struct {
	logger *zap.Logger
}

func newPayBandRenumberer(logger *zap.Logger) *payBandRenumberer {
	return &payBandRenumberer{logger: logger}
}

func (r *payBandRenumberer) Handle(_ context.Context, e shared.DomainEvent) error {
	ev, ok := e.(*rankedit.PayBandsRenumberRequestedEvent)
	if !ok || ev.Parent == nil {
		return nil
	}
	for i, pb := range ev.Parent.PayBands {
		pb.Name = fmt.Sprintf("%s %s", ev.Parent.Name, romanNumeral(i+1))
	}
	r.logger.Debug("pay bands renumbered",
		zap.String("parent", ev.Parent.Name),
		zap.Int("count", len(ev.Parent.PayBands)),
	)
	return nil
}

func (r *payBandRenumberer) EventTypes() []string {
	return []string{rankedit.EventTypePayBandsRenumberRequested}
}

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// romanNumeral formats n >= 1 in roman numerals
func romanNumeral(n int) string {
	var b strings.Builder
	for _, r := range romanTable {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String()
}
