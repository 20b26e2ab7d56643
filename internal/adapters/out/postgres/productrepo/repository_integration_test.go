package productrepo_test

import (
	"context"
	"testing"

	"fleet/internal/adapters/out/postgres/pgtest"
	"fleet/internal/adapters/out/postgres/productrepo"
	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/domain/model/product"
	"fleet/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type ProductRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *productrepo.GormProductRepository
}

func (suite *ProductRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *ProductRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.repository = productrepo.NewGormProductRepository(suite.pg.DB)
}

func (suite *ProductRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *ProductRepositoryIntegrationTestSuite) TestAddUpdateGet() {
	ctx := context.Background()
	p := pgtest.Product(suite.T())
	suite.Require().NoError(suite.repository.Add(ctx, p))

	suite.Require().NoError(p.AdjustStock(-40))
	suite.Require().NoError(p.SetCategory(product.Pastry))
	p.SetActive(false)
	suite.Require().NoError(suite.repository.Update(ctx, p))

	loaded, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(60, loaded.CurrentStock())
	suite.Equal(product.Pastry, loaded.Category())
	suite.Equal(product.Piece, loaded.Unit())
	suite.False(loaded.IsActive())
}

func (suite *ProductRepositoryIntegrationTestSuite) TestAdd_DuplicateName_Conflict() {
	ctx := context.Background()
	first := pgtest.Product(suite.T())
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second, err := product.NewProduct(kernel.NewUUID(), first.Name(), product.Rolls, product.Dozen, 4)
	suite.Require().NoError(err)

	suite.Require().ErrorIs(suite.repository.Add(ctx, second), errs.ErrConflict)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	p := pgtest.Product(suite.T())
	suite.Require().NoError(suite.repository.Add(ctx, p))

	suite.Require().NoError(suite.repository.Delete(ctx, p.ID()))

	_, err := suite.repository.Get(ctx, p.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Require().ErrorIs(suite.repository.Delete(ctx, p.ID()), errs.ErrObjectNotFound)
}

func TestProductRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepositoryIntegrationTestSuite))
}
