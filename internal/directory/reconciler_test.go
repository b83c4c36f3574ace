package directory

import (
	"context"
	"errors"
	"strings"
	"testing"

	"quicksupply/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubStore records every call so tests can assert which remote
// operations ran, and fails on demand.
type stubStore struct {
	remote    []model.Supplier
	fetchErr  error
	insertErr error
	updateErr error

	updateCalls  int
	insertCalls  int
	deleteCalls  int
	productCalls int
	assignedID   string
}

func (s *stubStore) FetchAll(ctx context.Context) ([]model.Supplier, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.remote, nil
}

func (s *stubStore) InsertSupplier(ctx context.Context, sup model.Supplier) (model.Supplier, error) {
	s.insertCalls++
	if s.insertErr != nil {
		return model.Supplier{}, s.insertErr
	}
	sup.ID = s.assignedID
	return sup, nil
}

func (s *stubStore) UpdateSupplier(ctx context.Context, sup model.Supplier) error {
	s.updateCalls++
	return s.updateErr
}

func (s *stubStore) DeleteProductsBySupplier(ctx context.Context, supplierID string) error {
	s.deleteCalls++
	return nil
}

func (s *stubStore) InsertProducts(ctx context.Context, products []model.Product) error {
	s.productCalls++
	return nil
}

const dbID = "5f0667cc-7f12-4b4f-a8b1-9f1e2d3c4b5a"

func remoteSupplier(id, name string) model.Supplier {
	return model.Supplier{
		ID:       id,
		Name:     name,
		Industry: model.IndustryAgriculture,
		Category: "Nuts & Seeds",
		Location: "Kampong Cham",
		Rating:   4.2,
	}
}

func newTestReconciler(t *testing.T, st *stubStore, fallback []model.Supplier) *Reconciler {
	t.Helper()
	return NewReconciler(st, fallback, zap.NewNop())
}

func TestLoadMergePrecedence(t *testing.T) {
	fallback := FallbackSuppliers()
	shadow := remoteSupplier("1", "Remote Shadow Of Fixture One")
	fresh := remoteSupplier(dbID, "Kampot Pepper Estates")
	st := &stubStore{remote: []model.Supplier{shadow, fresh}}

	r := newTestReconciler(t, st, fallback)
	r.Load(context.Background())

	all := r.All()
	require.Len(t, all, len(fallback)+1) // "1" collides, rest of fallback survives

	got, found := r.FindByID("1")
	require.True(t, found)
	assert.Equal(t, "Remote Shadow Of Fixture One", got.Name, "remote record wins the id collision")

	_, found = r.FindByID(dbID)
	assert.True(t, found)
	assert.False(t, r.Offline())
}

func TestLoadOfflineFallbackTotality(t *testing.T) {
	fallback := FallbackSuppliers()
	st := &stubStore{fetchErr: errors.New("connection refused")}

	r := newTestReconciler(t, st, fallback)
	r.Load(context.Background())

	all := r.All()
	require.Len(t, all, len(fallback))
	for i := range fallback {
		assert.Equal(t, fallback[i].ID, all[i].ID)
		assert.Equal(t, fallback[i].Name, all[i].Name)
	}
	assert.True(t, r.Offline())
}

func TestRefreshFailureKeepsState(t *testing.T) {
	st := &stubStore{remote: []model.Supplier{remoteSupplier(dbID, "Kampot Pepper Estates")}}
	r := newTestReconciler(t, st, FallbackSuppliers())
	r.Load(context.Background())
	before := r.All()

	st.fetchErr = errors.New("timeout")
	r.Refresh(context.Background())

	after := r.All()
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
	}
}

func TestUpsertListingOptimisticInsertOnRemoteFailure(t *testing.T) {
	st := &stubStore{insertErr: errors.New("unreachable")}
	r := newTestReconciler(t, st, FallbackSuppliers())
	owner := Owner{UserID: "u-1", Email: "owner@factory.kh"}

	item := model.Supplier{
		Name:     "Riverside Garments",
		Industry: model.IndustryGarmentTextile,
		Category: "Knitwear",
		Products: []model.Product{{Name: "Polo Shirt", Price: "$4.10", MOQ: "1,000"}},
	}

	got, notice := r.UpsertListing(context.Background(), owner, item, "")
	require.NoError(t, notice, "a failed insert is not a caller-visible failure")

	assert.True(t, strings.HasPrefix(got.ID, "temp-"), "failed remote insert yields a temp id, got %q", got.ID)
	assert.False(t, got.IsOwner)
	assert.True(t, got.BelongsToOwner)
	assert.Equal(t, 0, st.productCalls, "products must not be written without a parent row")

	stored, found := r.FindByID(got.ID)
	require.True(t, found, "listing must be visible immediately after the call returns")
	assert.Equal(t, "Riverside Garments", stored.Name)
	require.Len(t, stored.Products, 1)
	assert.Equal(t, got.ID, stored.Products[0].SupplierID)
}

func TestUpsertListingInsertSuccessAssignsDurableID(t *testing.T) {
	st := &stubStore{assignedID: dbID}
	r := newTestReconciler(t, st, FallbackSuppliers())
	owner := Owner{UserID: "u-1", Email: "owner@factory.kh"}

	item := model.Supplier{
		Name:     "Riverside Garments",
		Industry: model.IndustryGarmentTextile,
		Products: []model.Product{{Name: "Polo Shirt"}},
	}
	got, notice := r.UpsertListing(context.Background(), owner, item, "")
	require.NoError(t, notice)

	assert.Equal(t, dbID, got.ID)
	assert.Equal(t, 1, st.productCalls, "products follow a successful parent insert")
}

func TestUpsertListingMalformedIDSkipsRemoteUpdate(t *testing.T) {
	st := &stubStore{}
	r := newTestReconciler(t, st, FallbackSuppliers())
	owner := Owner{Email: "sales@pptextile.kh"}

	item := model.Supplier{
		Name:     "Phnom Penh Textile (Renamed)",
		Industry: model.IndustryGarmentTextile,
		Category: "Outerwear",
	}
	// "1" is a fixture id, not a canonical database identifier.
	got, notice := r.UpsertListing(context.Background(), owner, item, "1")
	require.NoError(t, notice)

	assert.Equal(t, 0, st.updateCalls, "fixture ids never reach the remote store")
	assert.Equal(t, 0, st.deleteCalls)
	assert.Equal(t, "Phnom Penh Textile (Renamed)", got.Name)

	stored, found := r.FindByID("1")
	require.True(t, found)
	assert.Equal(t, "Phnom Penh Textile (Renamed)", stored.Name)
}

func TestUpsertListingUpdateFailureReturnsNoticeKeepsLocal(t *testing.T) {
	remote := remoteSupplier(dbID, "Kampot Pepper Estates")
	st := &stubStore{remote: []model.Supplier{remote}, updateErr: errors.New("constraint violation")}
	r := newTestReconciler(t, st, nil)
	r.Load(context.Background())

	item := model.Supplier{Name: "Kampot Pepper Estates Intl", Industry: model.IndustryAgriculture}
	got, notice := r.UpsertListing(context.Background(), Owner{Email: "x@y.kh"}, item, dbID)

	require.Error(t, notice, "a failed update against a durable id surfaces a non-fatal notice")
	assert.Equal(t, 1, st.updateCalls)
	assert.Equal(t, "Kampot Pepper Estates Intl", got.Name, "local state still reflects the edit")

	stored, _ := r.FindByID(dbID)
	assert.Equal(t, "Kampot Pepper Estates Intl", stored.Name)
}

func TestUpsertListingUnknownTargetNoOps(t *testing.T) {
	st := &stubStore{}
	r := newTestReconciler(t, st, FallbackSuppliers())

	got, notice := r.UpsertListing(context.Background(), Owner{}, model.Supplier{Name: "Ghost"}, "does-not-exist")
	require.NoError(t, notice)
	assert.Empty(t, got.ID)
	assert.Len(t, r.All(), len(FallbackSuppliers()))
}

func TestUpsertDossierOptimistic(t *testing.T) {
	dossier := remoteSupplier(dbID, "Mekong Mills")
	dossier.IsOwner = true
	dossier.ContactEmail = "owner@mekongmills.kh"
	dossier.OwnerUserID = "u-9"
	st := &stubStore{remote: []model.Supplier{dossier}, updateErr: errors.New("conflict")}
	r := newTestReconciler(t, st, nil)
	r.Load(context.Background())

	owner := Owner{UserID: "u-9", Email: "owner@mekongmills.kh"}
	got, notice := r.UpsertDossier(context.Background(), owner, DossierUpdate{
		Name:          "Mekong Mills Co., Ltd.",
		Industry:      model.IndustryGarmentTextile,
		EmployeeCount: "300+",
	})

	require.Error(t, notice)
	assert.Equal(t, 1, st.updateCalls)
	assert.Equal(t, "Mekong Mills Co., Ltd.", got.Name)

	stored, found := r.DeriveOwnProfile(owner)
	require.True(t, found)
	assert.Equal(t, "Mekong Mills Co., Ltd.", stored.Name)
	assert.Equal(t, "300+", stored.EmployeeCount)
}

func TestUpsertDossierWithoutDossierNoOps(t *testing.T) {
	st := &stubStore{}
	r := newTestReconciler(t, st, FallbackSuppliers())

	got, notice := r.UpsertDossier(context.Background(), Owner{Email: "nobody@x.kh"}, DossierUpdate{Name: "X"})
	require.NoError(t, notice)
	assert.Empty(t, got.ID)
	assert.Equal(t, 0, st.updateCalls)
}

func TestRegisterDossierUniquePerOwner(t *testing.T) {
	st := &stubStore{insertErr: errors.New("offline")}
	r := newTestReconciler(t, st, nil)
	owner := Owner{UserID: "u-2", Email: "owner@newfactory.kh"}

	draft := model.Supplier{Name: "New Factory", Industry: model.IndustryConstruction}
	first, _ := r.RegisterDossier(context.Background(), owner, draft)
	require.True(t, first.IsOwner)

	// Re-running onboarding must not create a second dossier.
	draft.Name = "New Factory Ltd"
	second, _ := r.RegisterDossier(context.Background(), owner, draft)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "New Factory Ltd", second.Name)

	count := 0
	for _, s := range r.All() {
		if s.IsOwner && s.OwnedBy(owner.UserID, owner.Email) {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestDeriveOwnListings(t *testing.T) {
	owner := Owner{UserID: "u-3", Email: "owner@lists.kh"}
	listing := remoteSupplier(dbID, "Listing A")
	listing.BelongsToOwner = true
	listing.OwnerUserID = "u-3"
	dossier := remoteSupplier("6a1b2c3d-0000-4b4f-a8b1-9f1e2d3c4b5a", "Dossier")
	dossier.IsOwner = true
	dossier.OwnerUserID = "u-3"
	st := &stubStore{remote: []model.Supplier{listing, dossier}}

	r := newTestReconciler(t, st, nil)
	r.Load(context.Background())

	listings := r.DeriveOwnListings(owner)
	require.Len(t, listings, 1)
	assert.Equal(t, "Listing A", listings[0].Name)

	prof, found := r.DeriveOwnProfile(owner)
	require.True(t, found)
	assert.Equal(t, "Dossier", prof.Name)
}

func TestProjectOwnerDossierView(t *testing.T) {
	dossier := remoteSupplier(dbID, "Dossier Co")
	dossier.IsOwner = true
	dossier.Products = []model.Product{{ID: "native-1", Name: "Native Product"}}

	withProduct := remoteSupplier("l-1", "Listing With Product")
	withProduct.ImageURL = "img-l1"
	withProduct.Products = []model.Product{{Name: "Base", Price: "$9", MOQ: "50"}}

	bare := remoteSupplier("l-2", "Bare Listing")

	view := ProjectOwnerDossierView(dossier, []model.Supplier{withProduct, bare})
	require.Len(t, view.Products, 3)

	assert.Equal(t, "l-1", view.Products[0].ID, "listing id doubles as product id")
	assert.Equal(t, dossier.ID, view.Products[0].SupplierID)
	assert.Equal(t, "$9", view.Products[0].Price)
	assert.Equal(t, "50", view.Products[0].MOQ)

	assert.Equal(t, "Inquire", view.Products[1].Price, "listing without products defaults price")
	assert.Equal(t, "N/A", view.Products[1].MOQ)

	assert.Equal(t, "native-1", view.Products[2].ID, "native products follow the synthetic ones")

	// The projection never mutates the dossier.
	assert.Len(t, dossier.Products, 1)
}

func TestSearchFiltersAndGrouping(t *testing.T) {
	st := &stubStore{}
	r := newTestReconciler(t, st, FallbackSuppliers())

	// Free-text term matches name, category, description, or product name.
	results := r.Search("raincoat", "", nil)
	require.Len(t, results, 1)
	assert.Equal(t, "Phnom Penh Textile Co., Ltd.", results[0].Name)

	// Sector filter composes.
	results = r.Search("", "Agriculture", nil)
	require.Len(t, results, 1)
	assert.Equal(t, "Angkor Organic Cashews", results[0].Name)

	// Match ids take precedence over the term.
	results = r.Search("raincoat", "", []string{"2"})
	require.Len(t, results, 1)
	assert.Equal(t, "2", results[0].ID)

	grouped := Grouped(r.Search("", "All", nil))
	assert.Contains(t, grouped, model.IndustryGarmentTextile)
	assert.Contains(t, grouped[model.IndustryGarmentTextile], "Outerwear")
}

func TestSearchExcludesOwnerDossiers(t *testing.T) {
	dossier := remoteSupplier(dbID, "Hidden Dossier")
	dossier.IsOwner = true
	st := &stubStore{remote: []model.Supplier{dossier}}
	r := newTestReconciler(t, st, nil)
	r.Load(context.Background())

	assert.Empty(t, r.Search("", "All", nil))
	assert.Empty(t, r.MatchCandidates())
}

func TestIsPersistentID(t *testing.T) {
	assert.True(t, IsPersistentID(dbID))
	assert.False(t, IsPersistentID("1"))
	assert.False(t, IsPersistentID("temp-1712000000000"))
	assert.False(t, IsPersistentID("5f0667cc7f124b4fa8b19f1e2d3c4b5a"), "undashed hex is not the canonical grouping")
	assert.False(t, IsPersistentID(""))
}

func TestAllReturnsCopies(t *testing.T) {
	r := newTestReconciler(t, &stubStore{}, FallbackSuppliers())
	all := r.All()
	all[0].Name = "mutated"
	all[0].Products[0].Name = "mutated product"

	fresh := r.All()
	assert.NotEqual(t, "mutated", fresh[0].Name)
	assert.NotEqual(t, "mutated product", fresh[0].Products[0].Name)
}
