package main

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/XIVMarket_Go/internal/crafting"
	"github.com/osse101/XIVMarket_Go/internal/domain"
	"github.com/osse101/XIVMarket_Go/internal/search"
)

var levelPrefix = map[domain.MessageLevel]string{
	domain.MessageInfo:    "[info]",
	domain.MessageSuccess: "[ok]",
	domain.MessageWarning: "[warn]",
	domain.MessageDanger:  "[error]",
}

// displayTags picks number formatting per display language
var displayTags = map[domain.Language]language.Tag{
	domain.LanguageAuto:     language.MustParse("zh-TW"),
	domain.LanguageEnglish:  language.English,
	domain.LanguageJapanese: language.Japanese,
	domain.LanguageGerman:   language.German,
	domain.LanguageFrench:   language.French,
}

// printer writes localized tables and keeps the first write error
type printer struct {
	w   io.Writer
	p   *message.Printer
	err error
}

func newTablePrinter(w io.Writer, lang domain.Language) *printer {
	tag, ok := displayTags[lang]
	if !ok {
		tag = language.English
	}
	return &printer{w: w, p: message.NewPrinter(tag)}
}

// idText keeps ids free of digit grouping
func idText(id int) string {
	return strconv.Itoa(id)
}

func (pr *printer) printf(format string, args ...interface{}) {
	if pr.err != nil {
		return
	}
	_, pr.err = pr.p.Fprintf(pr.w, format, args...)
}

func (pr *printer) status(level domain.MessageLevel, text string) {
	pr.printf("%s %s\n", levelPrefix[level], text)
}

func (pr *printer) searchResults(res *search.Result, shown []domain.ItemSummary) {
	switch {
	case len(res.Items) == 0:
		pr.status(domain.MessageWarning, "No items found")
		return
	case res.Partial:
		pr.status(domain.MessageWarning, pr.p.Sprintf("Found %d items, some sources were unavailable", len(res.Items)))
	default:
		pr.status(domain.MessageSuccess, pr.p.Sprintf("Found %d items", len(res.Items)))
	}
	for _, w := range res.Warnings {
		pr.status(domain.MessageWarning, w)
	}

	for _, it := range shown {
		pr.printf("%8s  %-32s %s\n", idText(it.ID), it.Name, it.Category)
	}
	if len(res.Categories) > 0 {
		parts := make([]string, 0, len(res.Categories))
		for _, c := range res.Categories {
			parts = append(parts, pr.p.Sprintf("%s (%d)", c.Category, c.Count))
		}
		pr.printf("\n%s\n", strings.Join(parts, ", "))
	}
}

func (pr *printer) prices(server string, ids []int, prices map[int]domain.UnitPrice, degraded bool) {
	if degraded {
		pr.status(domain.MessageWarning, "Prices are unavailable right now")
	}
	pr.printf("Prices on %s\n", server)
	for _, id := range ids {
		if up, ok := prices[id]; ok && up.Price > 0 {
			pr.printf("%8s  %12d gil\n", idText(id), up.Price)
		} else {
			pr.printf("%8s  %12s\n", idText(id), "-")
		}
	}
}

func (pr *printer) overview(ov *crafting.Overview) {
	pr.printf("%s (#%s)\n", ov.Item.Name, idText(ov.Item.ID))
	if ov.Item.Category != "" {
		pr.printf("  Category  %s\n", ov.Item.Category)
	}
	pr.printf("  Level     %d\n", ov.Item.Level)
	if ov.Server == "" {
		pr.status(domain.MessageInfo, "Select a server to see market prices")
		return
	}
	pr.quote(ov.Price, ov.Server)
}

func (pr *printer) quote(q *domain.PriceQuote, server string) {
	if !q.HasData() {
		pr.status(domain.MessageInfo, "No market data for this item")
		return
	}
	pr.printf("  Market on %s\n", server)
	pr.qualityLine("NQ", q.NQ)
	pr.qualityLine("HQ", q.HQ)
}

func (pr *printer) qualityLine(label string, qp domain.QualityPrice) {
	pr.printf("    %s  min %s  avg %s\n", label, pr.optional(qp.Min), pr.optional(qp.Avg))
}

func (pr *printer) optional(v *int64) string {
	if v == nil {
		return "-"
	}
	return pr.p.Sprintf("%d", *v)
}

func (pr *printer) resolution(res *domain.Resolution) {
	if res.Kind == domain.OutcomeNoRecipe {
		pr.printf("%s (#%s)\n", res.Item.Name, idText(res.Item.ID))
		if res.Price.HasData() {
			pr.status(domain.MessageInfo, "This item cannot be crafted, showing its market price")
			pr.quote(res.Price, res.Price.Server)
		} else {
			pr.status(domain.MessageInfo, "This item cannot be crafted")
		}
		return
	}

	rc := res.Recipe
	switch {
	case rc.Server == "":
		pr.status(domain.MessageWarning, "Select a server to see ingredient prices")
	case rc.PriceDegraded:
		pr.status(domain.MessageWarning, "Prices are unavailable, costs are shown as 0")
	default:
		pr.status(domain.MessageSuccess, "Recipe costed on "+rc.Server)
	}
	pr.printf("%s (#%s)  %s Lv.%d  yield %d\n", rc.ResultItem.Name, idText(rc.ResultItem.ID), rc.Job, rc.Level, rc.Yield)
	pr.recipe(rc, 1)
	pr.printf("Total %d gil, %d gil per unit\n", rc.TotalCost, rc.CostPerUnit)
}

func (pr *printer) recipe(rc *domain.RecipeCost, indent int) {
	pad := strings.Repeat("  ", indent)
	ings := append([]domain.Ingredient(nil), rc.Ingredients...)
	sort.SliceStable(ings, func(i, j int) bool { return ings[i].TotalCost > ings[j].TotalCost })

	for _, ing := range ings {
		unit := "-"
		if ing.HasPrice {
			unit = pr.p.Sprintf("%d", ing.UnitPrice)
		}
		pr.printf("%s%-28s x%-3d @ %8s = %10d\n", pad, ing.Name, ing.Quantity, unit, ing.TotalCost)
		if ing.Saving != nil && ing.Saving.Amount > 0 {
			pr.printf("%s  craft it to save %d gil\n", pad, ing.Saving.Amount)
		}
		if ing.SubRecipe != nil {
			pr.recipe(ing.SubRecipe, indent+1)
		}
	}
}

func (pr *printer) datacenters(dcs []domain.Datacenter) {
	for _, dc := range dcs {
		pr.printf("%-16s %-12s %d worlds\n", dc.Name, dc.Region, len(dc.Worlds))
	}
}

func (pr *printer) worlds(dc string, worlds []domain.World) {
	pr.status(domain.MessageInfo, pr.p.Sprintf("%d worlds in %s", len(worlds), dc))
	for _, w := range worlds {
		pr.printf("%6s  %s\n", idText(w.ID), w.Name)
	}
}
