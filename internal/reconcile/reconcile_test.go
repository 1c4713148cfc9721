// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reconcile

import (
	"reflect"
	"testing"

	"github.com/pdiddy/techdata-engine/pkg/types"
)

func testCatalog() types.Catalog {
	return types.Catalog{
		{ID: "c1", Name: "Weight", Format: "kg"},
		{ID: "c2", Name: "Height", Format: "mm"},
		{ID: "c3", Name: "Protection Class", Format: "IP class"},
	}
}

func TestReconcileOrdering(t *testing.T) {
	p := types.Product{
		ArticleNumber: "A-100",
		ProductName:   "Widget",
		Properties: map[string]types.PropertyValue{
			"Height": {Name: "Height", Value: "120 mm", Confidence: 90},
		},
	}

	set := Reconcile(p, testCatalog())

	want := []string{FieldArticleNumber, FieldProductName, "Weight", "Height", "Protection Class"}
	if got := set.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}

	an, _ := set.Get(FieldArticleNumber)
	if an.Value != "A-100" || an.Confidence != 100 {
		t.Errorf("article number = %+v, want value A-100 at confidence 100", an)
	}
	if an.Consistent == nil || !*an.Consistent {
		t.Error("identity field must be marked consistent")
	}

	pn, _ := set.Get(FieldProductName)
	if pn.Value != "Widget" || pn.Confidence != 100 {
		t.Errorf("product name = %+v, want value Widget at confidence 100", pn)
	}
}

func TestReconcileCopiesVerbatim(t *testing.T) {
	consistent := true
	p := types.Product{
		ProductName: "Widget",
		Properties: map[string]types.PropertyValue{
			"Weight": {
				Name:           "Weight",
				Value:          "2 kg",
				Sources:        []types.Source{{URL: "https://a.example/p"}},
				Confidence:     77,
				Consistent:     &consistent,
				AgreementCount: 3,
			},
		},
	}

	set := Reconcile(p, testCatalog())
	got, ok := set.Get("Weight")
	if !ok {
		t.Fatal("Weight missing from reconciled set")
	}
	if got.Value != "2 kg" || got.Confidence != 77 || got.AgreementCount != 3 {
		t.Errorf("Weight = %+v, extracted entry must be copied verbatim", got)
	}
	if len(got.Sources) != 1 || got.Sources[0].URL != "https://a.example/p" {
		t.Errorf("Weight sources = %+v", got.Sources)
	}
}

func TestReconcileMaterializesPlaceholders(t *testing.T) {
	p := types.Product{ProductName: "Widget"} // nil property map

	set := Reconcile(p, testCatalog())
	if set.Len() != len(testCatalog())+2 {
		t.Fatalf("Len() = %d, want %d", set.Len(), len(testCatalog())+2)
	}
	for _, name := range []string{"Weight", "Height", "Protection Class"} {
		v, ok := set.Get(name)
		if !ok {
			t.Fatalf("%s missing", name)
		}
		if v.Value != NotFoundValue || v.Confidence != 0 {
			t.Errorf("%s = %+v, want %q placeholder at confidence 0", name, v, NotFoundValue)
		}
		if len(v.Sources) != 0 {
			t.Errorf("%s placeholder carries sources: %+v", name, v.Sources)
		}
	}
}

func TestReconcileSkipsIdentityNamesInCatalog(t *testing.T) {
	catalog := types.Catalog{
		{ID: "c0", Name: FieldArticleNumber},
		{ID: "c1", Name: FieldProductName},
		{ID: "c2", Name: "Weight"},
	}
	p := types.Product{ArticleNumber: "A-1", ProductName: "Widget"}

	set := Reconcile(p, catalog)
	want := []string{FieldArticleNumber, FieldProductName, "Weight"}
	if got := set.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	// Identity entries must keep their user-input confidence, not be
	// overwritten by the catalog walk.
	an, _ := set.Get(FieldArticleNumber)
	if an.Confidence != 100 {
		t.Errorf("article number confidence = %d, want 100", an.Confidence)
	}
}

func TestReconcileEmptyArticleNumber(t *testing.T) {
	set := Reconcile(types.Product{ProductName: "Widget"}, testCatalog())
	an, _ := set.Get(FieldArticleNumber)
	if an.Value != "" {
		t.Errorf("article number = %q, want empty string", an.Value)
	}
	if an.Confidence != 100 {
		t.Errorf("confidence = %d, want 100 even when empty", an.Confidence)
	}
}

func TestReconcileDeterministic(t *testing.T) {
	p := types.Product{
		ArticleNumber: "A-100",
		ProductName:   "Widget",
		Properties: map[string]types.PropertyValue{
			"Weight":           {Name: "Weight", Value: "2 kg", Confidence: 80},
			"Height":           {Name: "Height", Value: "120 mm", Confidence: 60},
			"Protection Class": {Name: "Protection Class", Value: "IP67", Confidence: 95},
		},
	}
	cat := testCatalog()

	first := Reconcile(p, cat)
	for i := 0; i < 50; i++ {
		again := Reconcile(p, cat)
		if !reflect.DeepEqual(first.Names(), again.Names()) {
			t.Fatalf("iteration %d: order diverged: %v vs %v", i, first.Names(), again.Names())
		}
		if !reflect.DeepEqual(first.Values(), again.Values()) {
			t.Fatalf("iteration %d: values diverged", i)
		}
	}
}
