// Package directory maintains the in-memory supplier collection served
// to the presentation layer. It merges the remote source of truth with
// a static fallback dataset and applies local mutations optimistically:
// the UI-visible state always reflects an edit synchronously, whether or
// not the remote write succeeded. Availability wins over consistency
// here, and every place that choice is made is an explicit branch.
package directory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"quicksupply/internal/model"
	"quicksupply/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Owner identifies the supplier session a mutation acts for.
type Owner struct {
	UserID string
	Email  string
}

// Reconciler owns the merged supplier collection. All reads return deep
// copies; callers never alias internal state.
type Reconciler struct {
	mu        sync.RWMutex
	store     store.Store
	fallback  []model.Supplier
	suppliers []model.Supplier
	offline   bool
	log       *zap.Logger
}

// NewReconciler builds a reconciler seeded with the fallback dataset so
// the directory is never empty, even before the first Load.
func NewReconciler(st store.Store, fallback []model.Supplier, log *zap.Logger) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{
		store:     st,
		fallback:  fallback,
		suppliers: cloneAll(fallback),
		log:       log,
	}
}

// IsPersistentID reports whether id is a canonical database identifier
// (8-4-4-4-12 hex grouping). Fixture records use small integer-like IDs
// and never qualify, which keeps remote writes away from fixture data.
func IsPersistentID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// merge computes remote ∪ {fallback records not shadowed by a remote
// id}. Remote records win every id collision.
func merge(remote, fallback []model.Supplier) []model.Supplier {
	seen := make(map[string]struct{}, len(remote))
	out := make([]model.Supplier, 0, len(remote)+len(fallback))
	for _, s := range remote {
		seen[s.ID] = struct{}{}
		out = append(out, s)
	}
	for _, s := range fallback {
		if _, ok := seen[s.ID]; !ok {
			out = append(out, s)
		}
	}
	return out
}

// Load fetches the remote record set and installs the merged result.
// A fetch failure is not an error: the directory degrades to the
// fallback dataset and flags offline mode.
func (r *Reconciler) Load(ctx context.Context) {
	remote, err := r.store.FetchAll(ctx)
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.suppliers = cloneAll(r.fallback)
		r.offline = true
		r.log.Warn("directory backend unreachable, serving fallback data", zap.Error(err))
		return
	}
	r.suppliers = merge(remote, r.fallback)
	r.offline = false
	r.log.Info("directory loaded",
		zap.Int("remote", len(remote)),
		zap.Int("merged", len(r.suppliers)))
}

// Refresh re-runs the merge against latest remote state. On failure the
// existing in-memory state is left untouched.
func (r *Reconciler) Refresh(ctx context.Context) {
	remote, err := r.store.FetchAll(ctx)
	if err != nil {
		r.log.Warn("refresh skipped, keeping current state", zap.Error(err))
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suppliers = merge(remote, r.fallback)
	r.offline = false
	r.log.Info("directory refreshed", zap.Int("merged", len(r.suppliers)))
}

// Offline reports whether the last Load fell back to fixture data.
func (r *Reconciler) Offline() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.offline
}

// All returns a copy of the merged collection.
func (r *Reconciler) All() []model.Supplier {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneAll(r.suppliers)
}

// FindByID looks a record up in the merged set.
func (r *Reconciler) FindByID(id string) (model.Supplier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.suppliers {
		if s.ID == id {
			return s.Clone(), true
		}
	}
	return model.Supplier{}, false
}

// FindByName looks a record up by exact name.
func (r *Reconciler) FindByName(name string) (model.Supplier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.suppliers {
		if s.Name == name {
			return s.Clone(), true
		}
	}
	return model.Supplier{}, false
}

// DeriveOwnProfile returns the owner's company dossier, the single
// record with IsOwner set that belongs to this session.
func (r *Reconciler) DeriveOwnProfile(owner Owner) (model.Supplier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.suppliers {
		if s.IsOwner && s.OwnedBy(owner.UserID, owner.Email) {
			return s.Clone(), true
		}
	}
	return model.Supplier{}, false
}

// DeriveOwnListings returns the session's independent listings, the
// records presented to buyers as their own directory entries.
func (r *Reconciler) DeriveOwnListings(owner Owner) []model.Supplier {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Supplier
	for _, s := range r.suppliers {
		if s.BelongsToOwner && !s.IsOwner && s.OwnedBy(owner.UserID, owner.Email) {
			out = append(out, s.Clone())
		}
	}
	return out
}

// ProjectOwnerDossierView builds the read-only "my full catalog"
// composite: every listing re-expressed as a synthetic product, followed
// by the dossier's native products. The composite is display-only and is
// never written back, so listing identity and product identity stay
// separate on the write path.
func ProjectOwnerDossierView(dossier model.Supplier, listings []model.Supplier) model.Supplier {
	out := dossier.Clone()
	synthetic := make([]model.Product, 0, len(listings))
	for _, l := range listings {
		price, moq := "Inquire", "N/A"
		images := []string{l.ImageURL}
		if len(l.Products) > 0 {
			first := l.Products[0]
			if first.Price != "" {
				price = first.Price
			}
			if first.MOQ != "" {
				moq = first.MOQ
			}
			if len(first.Images) > 1 {
				images = append(images, first.Images[1:]...)
			}
		}
		synthetic = append(synthetic, model.Product{
			ID:          l.ID, // listing id doubles as the product id
			SupplierID:  dossier.ID,
			Name:        l.Name,
			Description: l.Description,
			Price:       price,
			MOQ:         moq,
			Category:    l.Category,
			Images:      images,
		})
	}
	out.Products = append(synthetic, out.Products...)
	return out
}

// tempID builds the placeholder identifier for an optimistic insert
// whose remote write failed or was skipped.
func tempID() string {
	return "temp-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// applyListingDefaults fills the gaps of a submitted listing the same
// way for the remote row and the local entry.
func applyListingDefaults(item *model.Supplier, owner Owner) {
	if item.Name == "" {
		item.Name = "Factory Listing"
	}
	if item.Industry == "" {
		item.Industry = model.IndustryGarmentTextile
	}
	if item.Category == "" {
		item.Category = "General"
	}
	if item.Location == "" {
		item.Location = "Phnom Penh"
	}
	if item.ContactEmail == "" {
		item.ContactEmail = owner.Email
	}
	if item.Rating == 0 {
		item.Rating = 5
	}
	if item.Certifications == nil {
		item.Certifications = []string{}
	}
}

// UpsertListing applies a listing create or update. The returned record
// is the state now visible in the directory; the returned error is a
// non-fatal notice raised only when a well-formed persistent id was
// present but the remote update failed, and never blocks the local
// mutation.
func (r *Reconciler) UpsertListing(ctx context.Context, owner Owner, item model.Supplier, editTargetID string) (model.Supplier, error) {
	if editTargetID != "" {
		return r.updateListing(ctx, owner, item, editTargetID)
	}
	return r.insertListing(ctx, owner, item)
}

func (r *Reconciler) updateListing(ctx context.Context, owner Owner, item model.Supplier, targetID string) (model.Supplier, error) {
	existing, found := r.FindByID(targetID)
	if !found {
		// Lookup miss: stay silent, nothing to mutate.
		r.log.Warn("listing update for unknown id ignored", zap.String("id", targetID))
		return model.Supplier{}, nil
	}

	var notice error
	if IsPersistentID(targetID) {
		row := item.Clone()
		row.ID = targetID
		if err := r.store.UpdateSupplier(ctx, row); err != nil {
			r.log.Warn("remote listing update failed, keeping local state",
				zap.String("id", targetID), zap.Error(err))
			notice = fmt.Errorf("listing saved locally, sync failed: %w", err)
		} else {
			// Full product replace: delete then insert.
			if err := r.store.DeleteProductsBySupplier(ctx, targetID); err != nil {
				r.log.Warn("product replace delete failed", zap.String("id", targetID), zap.Error(err))
			} else if len(item.Products) > 0 {
				products := make([]model.Product, len(item.Products))
				for i, p := range item.Products {
					p.ID = ""
					p.SupplierID = targetID
					products[i] = p
				}
				if err := r.store.InsertProducts(ctx, products); err != nil {
					r.log.Warn("product replace insert failed", zap.String("id", targetID), zap.Error(err))
				}
			}
		}
	} else {
		// Fixture or temp id: local-only mutation.
		r.log.Debug("non-persistent id, skipping remote update", zap.String("id", targetID))
	}

	updated := existing
	updated.Name = item.Name
	updated.Industry = item.Industry
	updated.Category = item.Category
	updated.Location = item.Location
	updated.Description = item.Description
	updated.ContactEmail = item.ContactEmail
	updated.ImageURL = item.ImageURL
	updated.Products = make([]model.Product, len(item.Products))
	for i, p := range item.Products {
		p.SupplierID = targetID
		updated.Products[i] = p.Clone()
	}
	updated.UpdatedAt = time.Now()

	r.mu.Lock()
	for i := range r.suppliers {
		if r.suppliers[i].ID == targetID {
			r.suppliers[i] = updated.Clone()
			break
		}
	}
	r.mu.Unlock()

	return updated, notice
}

func (r *Reconciler) insertListing(ctx context.Context, owner Owner, item model.Supplier) (model.Supplier, error) {
	applyListingDefaults(&item, owner)
	item.ID = ""
	item.OwnerUserID = owner.UserID
	item.IsOwner = false
	item.BelongsToOwner = true

	newID := tempID()
	inserted, err := r.store.InsertSupplier(ctx, item)
	if err != nil {
		r.log.Warn("remote listing insert failed, creating local item", zap.Error(err))
	} else {
		newID = inserted.ID
		// Products only after the parent insert succeeded, so the
		// foreign key is valid on the remote side.
		if len(item.Products) > 0 {
			products := make([]model.Product, len(item.Products))
			for i, p := range item.Products {
				p.ID = ""
				p.SupplierID = newID
				products[i] = p
			}
			if err := r.store.InsertProducts(ctx, products); err != nil {
				r.log.Warn("product insert failed for new listing",
					zap.String("supplier_id", newID), zap.Error(err))
			}
		}
	}

	entry := item.Clone()
	entry.ID = newID
	for i := range entry.Products {
		entry.Products[i].SupplierID = newID
	}
	entry.UpdatedAt = time.Now()

	r.mu.Lock()
	r.suppliers = append([]model.Supplier{entry.Clone()}, r.suppliers...)
	r.mu.Unlock()

	return entry, nil
}

// DossierUpdate carries the editable company dossier fields. The dossier
// form always submits the full set, so fields apply unconditionally:
// whole-record replace, last writer wins.
type DossierUpdate struct {
	Name               string
	Industry           model.Industry
	Category           string
	Location           string
	Description        string
	ImageURL           string
	EstablishedYear    int
	EmployeeCount      string
	FactorySize        string
	ProductionCapacity string
	BusinessType       string
	ExportMarkets      []string
	Certifications     []string
}

// UpsertDossier applies the optimistic-write contract to the session's
// single IsOwner record. When no dossier exists the call is a no-op.
func (r *Reconciler) UpsertDossier(ctx context.Context, owner Owner, updates DossierUpdate) (model.Supplier, error) {
	dossier, found := r.DeriveOwnProfile(owner)
	if !found {
		r.log.Warn("dossier update without a dossier ignored", zap.String("email", owner.Email))
		return model.Supplier{}, nil
	}

	dossier.Name = updates.Name
	dossier.Industry = updates.Industry
	dossier.Category = updates.Category
	dossier.Location = updates.Location
	dossier.Description = updates.Description
	dossier.ImageURL = updates.ImageURL
	dossier.EstablishedYear = updates.EstablishedYear
	dossier.EmployeeCount = updates.EmployeeCount
	dossier.FactorySize = updates.FactorySize
	dossier.ProductionCapacity = updates.ProductionCapacity
	dossier.BusinessType = updates.BusinessType
	dossier.ExportMarkets = append([]string(nil), updates.ExportMarkets...)
	dossier.Certifications = append([]string(nil), updates.Certifications...)
	dossier.UpdatedAt = time.Now()

	var notice error
	if IsPersistentID(dossier.ID) {
		if err := r.store.UpdateSupplier(ctx, dossier); err != nil {
			r.log.Warn("remote dossier update failed, keeping local state",
				zap.String("id", dossier.ID), zap.Error(err))
			notice = fmt.Errorf("dossier saved locally, sync failed: %w", err)
		}
	}

	r.mu.Lock()
	for i := range r.suppliers {
		if r.suppliers[i].ID == dossier.ID {
			r.suppliers[i] = dossier.Clone()
			break
		}
	}
	r.mu.Unlock()

	return dossier, notice
}

// RegisterDossier completes supplier onboarding: it creates the
// session's IsOwner record, or routes to the dossier update path when
// one already exists so re-running onboarding can never produce a
// second dossier.
func (r *Reconciler) RegisterDossier(ctx context.Context, owner Owner, draft model.Supplier) (model.Supplier, error) {
	if _, exists := r.DeriveOwnProfile(owner); exists {
		return r.UpsertDossier(ctx, owner, DossierUpdate{
			Name:               draft.Name,
			Industry:           draft.Industry,
			Category:           draft.Category,
			Location:           draft.Location,
			Description:        draft.Description,
			ImageURL:           draft.ImageURL,
			EstablishedYear:    draft.EstablishedYear,
			EmployeeCount:      draft.EmployeeCount,
			FactorySize:        draft.FactorySize,
			ProductionCapacity: draft.ProductionCapacity,
			BusinessType:       draft.BusinessType,
			ExportMarkets:      draft.ExportMarkets,
			Certifications:     draft.Certifications,
		})
	}

	applyListingDefaults(&draft, owner)
	draft.ID = ""
	draft.OwnerUserID = owner.UserID
	draft.IsOwner = true
	draft.BelongsToOwner = false

	newID := tempID()
	inserted, err := r.store.InsertSupplier(ctx, draft)
	if err != nil {
		r.log.Warn("remote dossier insert failed, registering locally", zap.Error(err))
	} else {
		newID = inserted.ID
		if len(draft.Products) > 0 {
			products := make([]model.Product, len(draft.Products))
			for i, p := range draft.Products {
				p.ID = ""
				p.SupplierID = newID
				products[i] = p
			}
			if err := r.store.InsertProducts(ctx, products); err != nil {
				r.log.Warn("product insert failed for new dossier",
					zap.String("supplier_id", newID), zap.Error(err))
			}
		}
	}

	entry := draft.Clone()
	entry.ID = newID
	for i := range entry.Products {
		entry.Products[i].SupplierID = newID
	}
	entry.UpdatedAt = time.Now()

	r.mu.Lock()
	r.suppliers = append([]model.Supplier{entry.Clone()}, r.suppliers...)
	r.mu.Unlock()

	return entry, nil
}

// MatchCandidates returns the records eligible for AI matching: every
// non-dossier entry, the same set buyers browse.
func (r *Reconciler) MatchCandidates() []model.Supplier {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []model.Supplier
	for _, s := range r.suppliers {
		if !s.IsOwner {
			out = append(out, s.Clone())
		}
	}
	return out
}

// Search filters the buyer-visible directory. AI match ids take
// precedence over the free-text term; the sector filter composes with
// either.
func (r *Reconciler) Search(term, sector string, matchIDs []string) []model.Supplier {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matchSet := make(map[string]struct{}, len(matchIDs))
	for _, id := range matchIDs {
		matchSet[id] = struct{}{}
	}
	lower := strings.ToLower(term)

	var out []model.Supplier
	for _, s := range r.suppliers {
		if s.IsOwner {
			continue
		}
		if len(matchSet) > 0 {
			if _, ok := matchSet[s.ID]; !ok {
				continue
			}
		} else if lower != "" && !matchesTerm(s, lower) {
			continue
		}
		if sector != "" && sector != "All" && string(s.Industry) != sector {
			continue
		}
		out = append(out, s.Clone())
	}
	return out
}

func matchesTerm(s model.Supplier, lower string) bool {
	if strings.Contains(strings.ToLower(s.Name), lower) ||
		strings.Contains(strings.ToLower(s.Category), lower) ||
		strings.Contains(strings.ToLower(s.Description), lower) {
		return true
	}
	for _, p := range s.Products {
		if strings.Contains(strings.ToLower(p.Name), lower) {
			return true
		}
	}
	return false
}

// Grouped arranges search results industry → category for the directory
// page, categories sorted for stable rendering.
func Grouped(suppliers []model.Supplier) map[model.Industry]map[string][]model.Supplier {
	out := make(map[model.Industry]map[string][]model.Supplier)
	for _, s := range suppliers {
		cat := s.Category
		if cat == "" {
			cat = "General"
		}
		if out[s.Industry] == nil {
			out[s.Industry] = make(map[string][]model.Supplier)
		}
		out[s.Industry][cat] = append(out[s.Industry][cat], s)
	}
	return out
}

// Categories lists the distinct category names in a group, sorted.
func Categories(group map[string][]model.Supplier) []string {
	out := make([]string, 0, len(group))
	for cat := range group {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

func cloneAll(in []model.Supplier) []model.Supplier {
	out := make([]model.Supplier, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}
