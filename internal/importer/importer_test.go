package importer

import (
	"context"
	"strings"
	"testing"

	"srebrnasad/internal/domain"
)

type stubVarietyRepo struct {
	items []domain.Apple
}

func (s *stubVarietyRepo) Upsert(_ context.Context, a domain.Apple) (*domain.Apple, error) {
	s.items = append(s.items, a)
	return &a, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `name,description,price_cents,available,max_quantity_kg
Gala,Słodkie i soczyste,450,true,250
Szara Reneta,Kwaskowate na szarlotkę,480,false,
,,,,
Fuji,Słodkie z nutą kardamonu,550,,100`

	repo := &stubVarietyRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 varieties imported, got %d", count)
	}

	if repo.items[0].Name != "Gala" || repo.items[0].PriceCents != 450 || !repo.items[0].Available {
		t.Fatalf("unexpected variety data: %+v", repo.items[0])
	}
	if repo.items[1].Available {
		t.Fatalf("expected Szara Reneta unavailable")
	}
	if repo.items[1].MaxQuantityKg != domain.DefaultMaxQuantityKg {
		t.Fatalf("expected default max quantity, got %d", repo.items[1].MaxQuantityKg)
	}
	if repo.items[2].MaxQuantityKg != 100 {
		t.Fatalf("expected explicit max quantity, got %d", repo.items[2].MaxQuantityKg)
	}
}

func TestCSVImporter_RejectsBadPrice(t *testing.T) {
	csvData := `name,description,price_cents
Gala,Słodkie,free`

	imp := NewCSVImporter(strings.NewReader(csvData), &stubVarietyRepo{})
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("expected price parse error")
	}
}
