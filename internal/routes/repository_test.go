package routes

import (
	"context"
	"reflect"
	"regexp"
	"testing"

	"busgo/internal/inventory"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestMemoryRepositoryFindByCities(t *testing.T) {
	repo := NewMemoryRepository(DefaultCatalogue())
	ctx := context.Background()

	tests := []struct {
		name      string
		from, to  string
		wantCount int
	}{
		{"exact", "Chennai", "Madurai", 2},
		{"case and whitespace", "  chennai ", "MADURAI", 2},
		{"substring", "chen", "coim", 2},
		{"empty destination matches all", "Salem", "", 1},
		{"no match", "Chennai", "Mumbai", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FindByCities(ctx, tt.from, tt.to)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.wantCount {
				t.Fatalf("got %d routes, want %d", len(got), tt.wantCount)
			}
		})
	}
}

func TestMemoryRepositoryCities(t *testing.T) {
	repo := NewMemoryRepository([]inventory.RouteTemplate{
		{RouteNo: "1", From: "Salem", To: "Chennai"},
		{RouteNo: "2", From: "Chennai", To: "Madurai"},
	})
	got, _ := repo.Cities(context.Background())
	want := []string{"Chennai", "Madurai", "Salem"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("cities = %v, want %v", got, want)
	}
}

func TestDefaultCatalogueIsValid(t *testing.T) {
	for _, tpl := range DefaultCatalogue() {
		if err := tpl.Validate(); err != nil {
			t.Fatalf("route %s: %v", tpl.RouteNo, err)
		}
	}
}

func TestRepositoryFindByCitiesQuery(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer sqlDB.Close()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm open error: %v", err)
	}

	rows := sqlmock.NewRows([]string{"id", "route_no", "from_city", "to_city", "departure_timings", "duration", "price", "rating", "type"}).
		AddRow(1, "101", "Chennai", "Madurai", "6.30", "8h 45m", 650.0, 4.3, "A/C")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "route_templates" WHERE LOWER(from_city) LIKE $1 AND LOWER(to_city) LIKE $2`)).
		WithArgs("%chennai%", `%100\%%`).
		WillReturnRows(rows)

	got, err := NewRepository(db).FindByCities(context.Background(), "Chennai", "100%")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 1 || got[0].From != "Chennai" || got[0].To != "Madurai" {
		t.Fatalf("unexpected routes %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
