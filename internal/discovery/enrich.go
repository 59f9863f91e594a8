package discovery

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/finsignal/leadscout/internal/metrics"
)

// Waterfall fills a lead's contact fields through an ordered sequence
// of strategies, stopping each field's search once that field is set.
// Fields are monotonic: a value is never overwritten within one run,
// except the business-name upgrade to the registry's canonical name.
type Waterfall struct {
	directory DirectoryClient // nil without credentials
	registry  RegistryClient  // nil without credentials
	robots    RobotsPolicy
	fetcher   Fetcher
	limiter   DomainLimiter
	logger    *zap.Logger
}

// NewWaterfall builds a Waterfall. directory and registry may be nil;
// their steps are skipped.
func NewWaterfall(
	directory DirectoryClient,
	registry RegistryClient,
	robots RobotsPolicy,
	fetcher Fetcher,
	limiter DomainLimiter,
	logger *zap.Logger,
) *Waterfall {
	return &Waterfall{
		directory: directory,
		registry:  registry,
		robots:    robots,
		fetcher:   fetcher,
		limiter:   limiter,
		logger:    logger,
	}
}

// Enrich returns an updated copy of lead with contact fields filled
// where a strategy produced new information. cand, when non-nil, is the
// already-extracted page for lead.URL; its contact links satisfy the
// own-page scan without a second fetch. Failures in any single step are
// logged and skipped, never escalated.
func (w *Waterfall) Enrich(ctx context.Context, lead Lead, cand *ExtractedCandidate) Lead {
	domain, err := RegistrableDomain(lead.URL)
	if err != nil {
		w.logger.Debug("enrich: no usable domain", zap.String("url", lead.URL), zap.Error(err))
		domain = ""
	}

	if domain != "" {
		lead = w.fillFromDirectory(ctx, lead, domain, "directory")
	}

	if lead.Email == "" || lead.Phone == "" {
		var emails, phones []string
		if cand != nil {
			emails, phones = cand.Emails, cand.Phones
		} else {
			emails, phones = w.scanPageContacts(ctx, lead.URL)
		}
		lead = fillContacts(lead, emails, phones, "own_page")
	}

	if w.registry != nil && lead.BusinessName != "" {
		lead = w.consultRegistry(ctx, lead)
	}

	return lead
}

func (w *Waterfall) fillFromDirectory(ctx context.Context, lead Lead, domain, step string) Lead {
	if w.directory == nil || lead.Email != "" {
		return lead
	}
	res, err := w.directory.DomainSearch(ctx, domain)
	if err != nil {
		w.logger.Warn("enrich: directory lookup failed", zap.String("domain", domain), zap.Error(err))
		return lead
	}
	if res.Email != "" {
		lead.Email = res.Email
		metrics.EnrichmentFill("email", step)
	}
	if res.Phone != "" && lead.Phone == "" {
		lead.Phone = res.Phone
		metrics.EnrichmentFill("phone", step)
	}
	return lead
}

// consultRegistry resolves the canonical business name and, when email
// is still missing, reruns the directory and page scans against the
// registry-provided company URL.
func (w *Waterfall) consultRegistry(ctx context.Context, lead Lead) Lead {
	match, found, err := w.registry.CompanySearch(ctx, lead.BusinessName)
	if err != nil {
		w.logger.Warn("enrich: registry lookup failed",
			zap.String("name", lead.BusinessName), zap.Error(err))
		return lead
	}
	if !found {
		return lead
	}
	if match.Name != "" {
		lead.BusinessName = match.Name
	}
	if match.Jurisdiction != "" && lead.Jurisdiction == "" {
		lead.Jurisdiction = match.Jurisdiction
	}
	if lead.Email != "" || match.CompanyURL == "" {
		return lead
	}

	domain, err := RegistrableDomain(match.CompanyURL)
	if err != nil {
		w.logger.Debug("enrich: registry url unusable",
			zap.String("url", match.CompanyURL), zap.Error(err))
		return lead
	}
	lead = w.fillFromDirectory(ctx, lead, domain, "registry_directory")
	if lead.Email == "" || lead.Phone == "" {
		emails, phones := w.scanPageContacts(ctx, match.CompanyURL)
		lead = fillContacts(lead, emails, phones, "registry_page")
	}
	return lead
}

// scanPageContacts fetches a page under robots and rate-limit gates and
// returns its contact links in document order.
func (w *Waterfall) scanPageContacts(ctx context.Context, rawURL string) ([]string, []string) {
	if !w.robots.Allowed(ctx, rawURL) {
		w.logger.Debug("enrich: crawl denied by robots", zap.String("url", rawURL))
		metrics.RobotsDenied()
		return nil, nil
	}
	if w.limiter != nil {
		if err := w.limiter.Wait(ctx, rawURL); err != nil {
			return nil, nil
		}
	}
	resp, err := w.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		w.logger.Warn("enrich: page fetch failed", zap.String("url", rawURL), zap.Error(err))
		return nil, nil
	}
	emails, phones, err := parseContacts(resp.Body)
	if err != nil {
		w.logger.Debug("enrich: page parse failed", zap.String("url", rawURL), zap.Error(err))
		return nil, nil
	}
	return emails, phones
}

func parseContacts(body []byte) ([]string, []string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("parse document: %w", err)
	}
	emails, phones := contactLinks(doc)
	return emails, phones, nil
}

func fillContacts(lead Lead, emails, phones []string, step string) Lead {
	if lead.Email == "" && len(emails) > 0 {
		lead.Email = emails[0]
		metrics.EnrichmentFill("email", step)
	}
	if lead.Phone == "" && len(phones) > 0 {
		lead.Phone = phones[0]
		metrics.EnrichmentFill("phone", step)
	}
	return lead
}
