/**
 * @description
 * This file contains the core business logic of the onboarding-service: the
 * synchronizer that maps a wizard state snapshot onto the tenant's durable
 * records. Every present section is applied inside one database transaction;
 * omitted sections and fields always mean "no change", never "clear".
 *
 * @notes
 * - The service recovers nothing locally. Any step failure rolls the whole
 *   unit of work back and the error surfaces to the caller, who owns the
 *   user-facing messaging and any retry policy.
 * - Schema-version drift between the wizard client and this service is
 *   deliberately downgraded to a log warning so forward-compatible clients
 *   keep working against a slightly-behind synchronizer.
 */
package app

import (
	"context"
	"log"

	"github.com/vayva/onboarding-service/internal/domain"
	"github.com/vayva/onboarding-service/internal/store"
	"github.com/vayva/onboarding-service/pkg/rabbitmq"
)

const (
	// fallbackDisplayName is used when a profile must be created before the
	// wizard has captured any name.
	fallbackDisplayName = "My Store"
	// fallbackBankCode is recorded when the settlement bank is not in the
	// directory.
	fallbackBankCode = "000"

	onboardingExchange      = "onboarding_events"
	onboardingSyncedRouting = "onboarding.synced"
)

// OnboardingService applies wizard snapshots to the tenant schema.
type OnboardingService struct {
	store     store.OnboardingStore
	publisher rabbitmq.Publisher
}

// NewOnboardingService creates a new instance of OnboardingService.
func NewOnboardingService(st store.OnboardingStore, publisher rabbitmq.Publisher) *OnboardingService {
	return &OnboardingService{store: st, publisher: publisher}
}

// SyncOnboarding applies every present section of the snapshot to the
// store's records as one all-or-nothing unit of work. Re-running the same
// snapshot produces no duplicate rows and no changes beyond updated_at.
func (s *OnboardingService) SyncOnboarding(ctx context.Context, storeID string, state *domain.OnboardingState) error {
	if storeID == "" || state == nil {
		return nil
	}

	if state.SchemaVersion != 0 && state.SchemaVersion != domain.ExpectedSchemaVersion {
		log.Printf("[Sync][Drift] Schema version mismatch: expected %d, got %d. Applying recognized fields best-effort.",
			domain.ExpectedSchemaVersion, state.SchemaVersion)
	}

	log.Printf("[Sync] Starting onboarding sync for store %s", storeID)

	err := s.store.InTx(ctx, func(tx store.OnboardingTx) error {
		if err := s.syncStoreCore(ctx, tx, storeID, state); err != nil {
			return err
		}
		phone := contactPhone(state)
		if err := s.syncProfile(ctx, tx, storeID, state, phone); err != nil {
			return err
		}
		if phone != "" {
			if err := tx.UpsertWhatsappChannel(ctx, storeID, phone); err != nil {
				return err
			}
		}
		if err := s.syncBilling(ctx, tx, storeID, state); err != nil {
			return err
		}
		if err := s.syncSettlementBank(ctx, tx, storeID, state); err != nil {
			return err
		}
		if err := s.syncDelivery(ctx, tx, storeID, state); err != nil {
			return err
		}
		return s.syncKyc(ctx, tx, storeID, state)
	})
	if err != nil {
		log.Printf("[Sync] Onboarding sync failed for store %s: %v", storeID, err)
		return err
	}

	log.Printf("[Sync] Onboarding sync completed for store %s", storeID)
	s.publishSynced(ctx, storeID, state)
	return nil
}

// syncStoreCore patches the store row. This step always executes so every
// successful sync advances the store's updated_at, even for an empty snapshot.
func (s *OnboardingService) syncStoreCore(ctx context.Context, tx store.OnboardingTx, storeID string, state *domain.OnboardingState) error {
	update := domain.StoreCoreUpdate{}
	if b := state.Business; b != nil {
		if b.Name != "" {
			update.Name = &b.Name
		}
		if b.Category != "" {
			update.Category = &b.Category
		}
	}
	if d := state.StoreDetails; d != nil {
		if d.Slug != "" {
			update.Slug = &d.Slug
		}
		if d.PublishStatus != "" {
			isLive := d.PublishStatus == "published"
			update.IsLive = &isLive
		}
	}
	update.Settings, update.SettingsDefaults = settingsPatch(state)
	return tx.UpdateStoreCore(ctx, storeID, update)
}

// settingsPatch splits the settings-blob changes into two layers: patch
// carries only the keys the wizard actually supplied and wins over the
// stored blob; defaults carries the first-write values for the touched
// sections and only ever fills keys the blob has never stored. An omitted
// field therefore never clobbers an earlier value. Both are nil when
// neither feeding section is present.
func settingsPatch(state *domain.OnboardingState) (patch, defaults *domain.StoreSettings) {
	var supplied, fallback domain.StoreSettings
	suppliedAny, fallbackAny := false, false

	if d := state.StoreDetails; d != nil {
		if d.DomainPreference != "" {
			supplied.DomainPreference = d.DomainPreference
			suppliedAny = true
		} else {
			fallback.DomainPreference = "subdomain"
			fallbackAny = true
		}
	}
	if p := state.Payments; p != nil {
		if p.Currency != "" {
			supplied.Currency = p.Currency
			suppliedAny = true
		} else {
			fallback.Currency = "NGN"
			fallbackAny = true
		}
		if p.PayoutScheduleAcknowledged != nil {
			ack := *p.PayoutScheduleAcknowledged
			supplied.PayoutScheduleAcknowledged = &ack
			suppliedAny = true
		} else {
			unacked := false
			fallback.PayoutScheduleAcknowledged = &unacked
			fallbackAny = true
		}
	}

	if suppliedAny {
		patch = &supplied
	}
	if fallbackAny {
		defaults = &fallback
	}
	return patch, defaults
}

// syncProfile creates the profile with generated fallbacks on first contact,
// or patches only the supplied fields on later syncs.
func (s *OnboardingService) syncProfile(ctx context.Context, tx store.OnboardingTx, storeID string, state *domain.OnboardingState, phone string) error {
	var displayName, locState, city string
	if d := state.StoreDetails; d != nil {
		displayName = d.StoreName
	}
	if b := state.Business; b != nil {
		if displayName == "" {
			displayName = b.Name
		}
		if b.Location != nil {
			locState = b.Location.State
			city = b.Location.City
		}
	}

	existing, err := tx.GetProfile(ctx, storeID)
	if err != nil {
		return err
	}

	if existing == nil {
		profile := &domain.StoreProfile{
			StoreID:         storeID,
			Slug:            fallbackProfileSlug(storeID, state),
			DisplayName:     displayName,
			PickupAvailable: true,
		}
		if profile.DisplayName == "" {
			profile.DisplayName = fallbackDisplayName
		}
		if locState != "" {
			profile.State = &locState
		}
		if city != "" {
			profile.City = &city
		}
		if phone != "" {
			profile.WhatsappNumber = &phone
		}
		return tx.CreateProfile(ctx, profile)
	}

	update := domain.StoreProfileUpdate{}
	if displayName != "" {
		update.DisplayName = &displayName
	}
	if locState != "" {
		update.State = &locState
	}
	if city != "" {
		update.City = &city
	}
	if phone != "" {
		update.WhatsappNumber = &phone
	}
	return tx.UpdateProfile(ctx, storeID, update)
}

// fallbackProfileSlug prefers the wizard's slug and otherwise derives one
// from the store id.
func fallbackProfileSlug(storeID string, state *domain.OnboardingState) string {
	if d := state.StoreDetails; d != nil && d.Slug != "" {
		return d.Slug
	}
	short := storeID
	if len(short) > 8 {
		short = short[:8]
	}
	return "store-" + short
}

// syncBilling upserts the billing profile when a legal name is present.
func (s *OnboardingService) syncBilling(ctx context.Context, tx store.OnboardingTx, storeID string, state *domain.OnboardingState) error {
	b := state.Business
	if b == nil || b.LegalName == "" {
		return nil
	}
	var email *string
	if b.Email != "" {
		email = &b.Email
	}
	return tx.UpsertBillingProfile(ctx, storeID, b.LegalName, email)
}

// syncSettlementBank replaces the default beneficiary. The previous default
// rows are demoted, not rewritten, so the payout history accumulates; when
// the incoming details match the current default the step is a no-op, which
// keeps re-submission of the same snapshot idempotent.
func (s *OnboardingService) syncSettlementBank(ctx context.Context, tx store.OnboardingTx, storeID string, state *domain.OnboardingState) error {
	if state.Payments == nil || state.Payments.SettlementBank == nil {
		return nil
	}
	bank := state.Payments.SettlementBank

	incoming := domain.BankBeneficiary{
		StoreID:       storeID,
		BankName:      bank.BankName,
		AccountNumber: bank.AccountNumber,
		AccountName:   bank.AccountName,
		IsDefault:     true,
	}

	current, err := tx.GetDefaultBeneficiary(ctx, storeID)
	if err != nil {
		return err
	}
	if current != nil && current.SameAccount(incoming) {
		return nil
	}

	code, err := tx.LookupBankCode(ctx, bank.BankName)
	if err != nil {
		return err
	}
	if code == "" {
		code = fallbackBankCode
	}
	incoming.BankCode = code

	if err := tx.DemoteDefaultBeneficiaries(ctx, storeID); err != nil {
		return err
	}
	return tx.CreateBeneficiary(ctx, &incoming)
}

// syncDelivery writes the delivery-derived profile fields and upserts the
// shipping/delivery policy document.
func (s *OnboardingService) syncDelivery(ctx context.Context, tx store.OnboardingTx, storeID string, state *domain.OnboardingState) error {
	d := state.Delivery
	if d == nil {
		return nil
	}

	var methods []string
	if d.Policy != "pickup_only" {
		provider := d.DefaultProvider
		if provider == "" {
			provider = "manual"
		}
		methods = append(methods, provider)
	}

	if d.PickupAddress != "" {
		// TODO: move the pickup address onto inventory locations once that
		// table carries address fields; until then it only lives in the
		// wizard document.
		log.Printf("[Sync] Pickup address for store %s persists in the wizard document only", storeID)
	}

	err := tx.UpdateProfileDelivery(ctx, storeID, domain.ProfileDeliveryUpdate{
		PickupAvailable: d.Policy != "required",
		DeliveryMethods: methods,
	})
	if err != nil {
		return err
	}

	if d.Policy == "" {
		return nil
	}
	slug, err := tx.GetStoreSlug(ctx, storeID)
	if err != nil {
		return err
	}
	md, html := domain.DeliveryPolicyContent(d.Policy)
	return tx.UpsertDeliveryPolicy(ctx, &domain.MerchantPolicy{
		StoreID:     storeID,
		StoreSlug:   slug,
		Type:        domain.PolicyShippingDelivery,
		Title:       "Delivery Policy",
		ContentMd:   md,
		ContentHTML: html,
		Status:      domain.PolicyPublished,
	})
}

// syncKyc upserts the verification record for the accepted wizard statuses
// and silently ignores everything else.
func (s *OnboardingService) syncKyc(ctx context.Context, tx store.OnboardingTx, storeID string, state *domain.OnboardingState) error {
	status, ok := domain.KycStatusFromWizard(state.KycStatus)
	if !ok {
		return nil
	}
	return tx.UpsertKycRecord(ctx, storeID, status)
}

// contactPhone extracts the owner phone used for the WhatsApp channel.
func contactPhone(state *domain.OnboardingState) string {
	if state.Identity == nil {
		return ""
	}
	return state.Identity.Phone
}

// publishSynced emits the post-commit event. Publish failures are logged and
// swallowed; the sync itself has already committed.
func (s *OnboardingService) publishSynced(ctx context.Context, storeID string, state *domain.OnboardingState) {
	if s.publisher == nil {
		return
	}
	event := domain.OnboardingSyncedEvent{
		StoreID:       storeID,
		SchemaVersion: state.SchemaVersion,
		Sections:      presentSections(state),
		IsLive:        state.StoreDetails != nil && state.StoreDetails.PublishStatus == "published",
	}
	if err := s.publisher.Publish(ctx, onboardingExchange, onboardingSyncedRouting, event); err != nil {
		log.Printf("WARN: failed to publish %s for store %s: %v", onboardingSyncedRouting, storeID, err)
	}
}

// presentSections lists which wizard sections the snapshot carried, for
// event consumers that only care about part of the document.
func presentSections(state *domain.OnboardingState) []string {
	var sections []string
	if state.Business != nil {
		sections = append(sections, "business")
	}
	if state.StoreDetails != nil {
		sections = append(sections, "storeDetails")
	}
	if state.Identity != nil {
		sections = append(sections, "identity")
	}
	if state.Payments != nil {
		sections = append(sections, "payments")
	}
	if state.Delivery != nil {
		sections = append(sections, "delivery")
	}
	if state.KycStatus != "" {
		sections = append(sections, "kycStatus")
	}
	return sections
}
