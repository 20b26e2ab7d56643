package queries

import (
	"context"
	"errors"

	"fleet/internal/pkg/errs"

	"gorm.io/gorm"
)

// entityTable describes how to read one entity table into its view. The
// row type is hidden inside take and find so that handlers only carry the
// view type.
type entityTable[V any] struct {
	resource      string
	table         string
	softDeletable bool
	sortable      map[string]string
	take          func(db *gorm.DB) (V, error)
	find          func(db *gorm.DB) ([]V, error)
}

type viewable[V any] interface {
	toView() V
}

func newEntityTable[R viewable[V], V any](
	resource, table string,
	softDeletable bool,
	sortable map[string]string,
) entityTable[V] {
	return entityTable[V]{
		resource:      resource,
		table:         table,
		softDeletable: softDeletable,
		sortable:      sortable,
		take: func(db *gorm.DB) (V, error) {
			var row R
			if err := db.Take(&row).Error; err != nil {
				var zero V
				return zero, err
			}
			return row.toView(), nil
		},
		find: func(db *gorm.DB) ([]V, error) {
			var rows []R
			if err := db.Find(&rows).Error; err != nil {
				return nil, err
			}
			views := make([]V, 0, len(rows))
			for _, r := range rows {
				views = append(views, r.toView())
			}
			return views, nil
		},
	}
}

func (t entityTable[V]) scoped(db *gorm.DB, scope Scope, filter EntityFilter) *gorm.DB {
	db = db.Table(t.table)
	if t.softDeletable {
		db = scope.apply(db)
	}
	if filter != nil {
		db = filter.apply(db)
	}
	return db
}

var (
	regions = newEntityTable[regionRow, RegionView]("region", "regions", true, map[string]string{
		"name":      "name",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	})
	villages = newEntityTable[villageRow, VillageView]("village", "villages", true, map[string]string{
		"name":        "name",
		"inhabitants": "inhabitants",
		"createdAt":   "created_at",
		"updatedAt":   "updated_at",
	})
	vehicles = newEntityTable[vehicleRow, VehicleView]("vehicle", "vehicles", true, map[string]string{
		"registrationNumber": "registration_number",
		"model":              "model",
		"status":             "status",
		"createdAt":          "created_at",
		"updatedAt":          "updated_at",
	})
	drivers = newEntityTable[driverRow, DriverView]("driver", "drivers", true, map[string]string{
		"name":          "name",
		"status":        "status",
		"licenseExpiry": "license_expiry",
		"createdAt":     "created_at",
		"updatedAt":     "updated_at",
	})
	products = newEntityTable[productRow, ProductView]("product", "products", false, map[string]string{
		"name":         "name",
		"category":     "category",
		"unitPrice":    "unit_price",
		"currentStock": "current_stock",
		"createdAt":    "created_at",
	})
)

// GetEntityQueryHandler reads one entity of the table it was built for.
type GetEntityQueryHandler[V any] struct {
	db    *gorm.DB
	table entityTable[V]
}

func NewGetRegionQueryHandler(db *gorm.DB) GetEntityQueryHandler[RegionView] {
	return GetEntityQueryHandler[RegionView]{db: db, table: regions}
}

func NewGetVillageQueryHandler(db *gorm.DB) GetEntityQueryHandler[VillageView] {
	return GetEntityQueryHandler[VillageView]{db: db, table: villages}
}

func NewGetVehicleQueryHandler(db *gorm.DB) GetEntityQueryHandler[VehicleView] {
	return GetEntityQueryHandler[VehicleView]{db: db, table: vehicles}
}

func NewGetDriverQueryHandler(db *gorm.DB) GetEntityQueryHandler[DriverView] {
	return GetEntityQueryHandler[DriverView]{db: db, table: drivers}
}

func NewGetProductQueryHandler(db *gorm.DB) GetEntityQueryHandler[ProductView] {
	return GetEntityQueryHandler[ProductView]{db: db, table: products}
}

// Handle returns NotFound when the record is missing or hidden by the scope.
func (h GetEntityQueryHandler[V]) Handle(ctx context.Context, query GetEntityQuery) (V, error) {
	var zero V
	if err := query.Validate(); err != nil {
		return zero, err
	}

	db := h.table.scoped(h.db.WithContext(ctx), query.Scope(), nil).
		Where("id = ?", query.ID().Bytes())
	view, err := h.table.take(db)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return zero, errs.NewObjectNotFoundError(h.table.resource, query.ID())
	}
	if err != nil {
		return zero, errs.NewStorageFailureError("get "+h.table.resource, err)
	}
	return view, nil
}

// ListEntitiesQueryHandler pages through the table it was built for,
// narrowed by that table's filter type.
type ListEntitiesQueryHandler[F EntityFilter, V any] struct {
	db    *gorm.DB
	table entityTable[V]
}

func NewListRegionsQueryHandler(db *gorm.DB) ListEntitiesQueryHandler[RegionFilter, RegionView] {
	return ListEntitiesQueryHandler[RegionFilter, RegionView]{db: db, table: regions}
}

func NewListVillagesQueryHandler(db *gorm.DB) ListEntitiesQueryHandler[VillageFilter, VillageView] {
	return ListEntitiesQueryHandler[VillageFilter, VillageView]{db: db, table: villages}
}

func NewListVehiclesQueryHandler(db *gorm.DB) ListEntitiesQueryHandler[VehicleFilter, VehicleView] {
	return ListEntitiesQueryHandler[VehicleFilter, VehicleView]{db: db, table: vehicles}
}

func NewListDriversQueryHandler(db *gorm.DB) ListEntitiesQueryHandler[DriverFilter, DriverView] {
	return ListEntitiesQueryHandler[DriverFilter, DriverView]{db: db, table: drivers}
}

func NewListProductsQueryHandler(db *gorm.DB) ListEntitiesQueryHandler[ProductFilter, ProductView] {
	return ListEntitiesQueryHandler[ProductFilter, ProductView]{db: db, table: products}
}

func (h ListEntitiesQueryHandler[F, V]) Handle(ctx context.Context, query ListEntitiesQuery[F]) (PageResult[V], error) {
	if err := query.Validate(); err != nil {
		return PageResult[V]{}, err
	}
	fields, err := parseSortBy(query.SortBy(), h.table.sortable)
	if err != nil {
		return PageResult[V]{}, err
	}

	base := h.table.scoped(h.db.WithContext(ctx), query.Scope(), query.Filter())

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return PageResult[V]{}, errs.NewStorageFailureError("count "+h.table.table, err)
	}

	views, err := h.table.find(applyPage(applyOrder(base.Session(&gorm.Session{}), fields), query.Page()))
	if err != nil {
		return PageResult[V]{}, errs.NewStorageFailureError("list "+h.table.table, err)
	}
	return newPageResult(views, query.Page(), total), nil
}
