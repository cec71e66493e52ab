package catalog

import (
	"context"
	"testing"

	domain "github.com/BruksfildServices01/service-catalog/internal/domain/catalog"
	"github.com/BruksfildServices01/service-catalog/internal/httperr"
	"github.com/BruksfildServices01/service-catalog/internal/models"
	"github.com/BruksfildServices01/service-catalog/internal/patch"
)

func discount(t models.DiscountType) *models.DiscountType { return &t }

func TestCreatePackageDerivesPrices(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	services := NewServices(repo, nil)
	packages := NewPackages(repo, nil)

	a := mustService(t, services, ServiceInput{Name: strp("A"), Price: decp("30.00"), DurationMinutes: intp(30)})
	b := mustService(t, services, ServiceInput{Name: strp("B"), Price: decp("50.00"), DurationMinutes: intp(45)})
	c := mustService(t, services, ServiceInput{Name: strp("C"), Price: decp("20.00"), DurationMinutes: intp(15)})

	p, err := packages.Create(ctx, tenant, PackageInput{
		Name:          strp("Spa Day"),
		DiscountType:  discount(models.DiscountPercentage),
		DiscountValue: decp("15"),
		Items: &[]domain.PackageLine{
			{ServiceID: a.ID, Quantity: 1},
			{ServiceID: b.ID, Quantity: 2},
			{ServiceID: c.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := packages.Get(ctx, tenant, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.OriginalPrice != "150.00" || got.FinalPrice != "127.50" ||
		got.Savings != "22.50" || got.SavingsPercentage != "15.00" {
		t.Fatalf("unexpected prices: %+v", got)
	}
	if got.TotalDuration != 30+90+15 {
		t.Fatalf("total duration = %d", got.TotalDuration)
	}
	for i, it := range got.Items {
		if it.SortOrder != i {
			t.Fatalf("item %d sort order = %d", i, it.SortOrder)
		}
	}
}

func TestCreatePackageIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	services := NewServices(repo, nil)
	packages := NewPackages(repo, nil)

	a := mustService(t, services, ServiceInput{Name: strp("A")})

	tests := []struct {
		name  string
		items *[]domain.PackageLine
		kind  httperr.Kind
		code  string
	}{
		{"no items", nil, httperr.KindValidation, "package_items_required"},
		{"unknown service", &[]domain.PackageLine{{ServiceID: a.ID}, {ServiceID: 999}}, httperr.KindNotFound, "service_not_found"},
		{"repeated service", &[]domain.PackageLine{{ServiceID: a.ID}, {ServiceID: a.ID}}, httperr.KindValidation, "duplicate_package_service"},
		{"negative quantity", &[]domain.PackageLine{{ServiceID: a.ID, Quantity: -1}}, httperr.KindValidation, "invalid_quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := packages.Create(ctx, tenant, PackageInput{Name: strp("Bundle"), Items: tt.items})
			requireKind(t, err, tt.kind, tt.code)
		})
	}

	list, err := packages.List(ctx, tenant, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("failed creates left %d packages behind", len(list))
	}
}

func TestUpdatePackageReplacesItemsAtomically(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	services := NewServices(repo, nil)
	packages := NewPackages(repo, nil)

	a := mustService(t, services, ServiceInput{Name: strp("A"), Price: decp("10")})
	b := mustService(t, services, ServiceInput{Name: strp("B"), Price: decp("20")})

	p, err := packages.Create(ctx, tenant, PackageInput{
		Name:  strp("Combo"),
		Items: &[]domain.PackageLine{{ServiceID: a.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = packages.Update(ctx, tenant, p.ID, PackageInput{
		Name:  strp("Combo Plus"),
		Items: &[]domain.PackageLine{{ServiceID: b.ID}, {ServiceID: 999}},
	})
	requireKind(t, err, httperr.KindNotFound, "service_not_found")

	got, _ := packages.Get(ctx, tenant, p.ID)
	if got.Name != "Combo" || len(got.Items) != 1 || got.Items[0].ServiceID != a.ID {
		t.Fatalf("failed update leaked: %+v", got)
	}

	updated, err := packages.Update(ctx, tenant, p.ID, PackageInput{
		Name:       strp("Combo Plus"),
		FixedPrice: patch.Of(*decp("25")),
		Items:      &[]domain.PackageLine{{ServiceID: b.ID}, {ServiceID: a.ID}},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "combo-plus" || len(updated.Items) != 2 || updated.Items[0].ServiceID != b.ID {
		t.Fatalf("unexpected package: %+v", updated)
	}

	got, _ = packages.Get(ctx, tenant, p.ID)
	if got.FinalPrice != "25.00" || got.OriginalPrice != "30.00" {
		t.Fatalf("fixed price should win: %+v", got)
	}
}

func TestPackageValidation(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	a := mustService(t, NewServices(repo, nil), ServiceInput{Name: strp("A")})
	packages := NewPackages(repo, nil)

	_, err := packages.Create(ctx, tenant, PackageInput{
		Name:          strp("Too generous"),
		DiscountValue: decp("120"),
		Items:         &[]domain.PackageLine{{ServiceID: a.ID}},
	})
	requireKind(t, err, httperr.KindValidation, "invalid_discount")

	_, err = packages.Create(ctx, tenant, PackageInput{
		Name:         strp("Expired"),
		ValidityDays: patch.Of(0),
		Items:        &[]domain.PackageLine{{ServiceID: a.ID}},
	})
	requireKind(t, err, httperr.KindValidation, "invalid_validity_days")

	err = packages.Delete(ctx, tenant, 404)
	requireKind(t, err, httperr.KindNotFound, "package_not_found")
}
