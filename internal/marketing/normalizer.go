// Package marketing cleans the social and email marketing exports. The
// work per row is light (null coalescing, timestamp splitting); the load-
// bearing part of the contract is duplicate-key detection: a duplicate key
// in a feed means the upstream export is corrupt, and that must surface as
// an error instead of being silently deduplicated.
package marketing

import (
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/civil"

	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/models"
)

// DuplicateKeyError reports two input rows sharing a key that must be
// unique within one platform's dataset.
type DuplicateKeyError struct {
	Dataset string
	Key     string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %q in %s feed", e.Key, e.Dataset)
}

// sendTSLayout is the combined timestamp format in the email export.
const sendTSLayout = "2006-01-02 15:04:05"

// SocialDaily normalizes one platform's daily export. Follows is the one
// numeric the platforms are allowed to omit; it coalesces to zero. Dates
// must be unique per platform.
func SocialDaily(platform string, rows []models.SocialDailyRaw) ([]models.SocialDaily, error) {
	seen := make(map[civil.Date]bool, len(rows))
	out := make([]models.SocialDaily, 0, len(rows))
	for _, r := range rows {
		if seen[r.Date] {
			return nil, &DuplicateKeyError{Dataset: platform, Key: r.Date.String()}
		}
		seen[r.Date] = true

		var follows int64
		if r.Follows != nil {
			follows = *r.Follows
		}
		out = append(out, models.SocialDaily{
			Platform:     platform,
			Date:         r.Date,
			Follows:      follows,
			Interactions: r.Interactions,
			LinkClicks:   r.LinkClicks,
			Reach:        r.Reach,
			Visits:       r.Visits,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// EmailCampaigns normalizes the email-marketing export: the combined send
// timestamp splits into separate date and time fields, and unique_id must
// be unique across the feed. A row with an unparseable timestamp is a
// malformed input record and is skipped, not fatal.
func EmailCampaigns(rows []models.EmailCampaignRaw) ([]models.EmailCampaign, int, error) {
	seen := make(map[string]bool, len(rows))
	out := make([]models.EmailCampaign, 0, len(rows))
	skipped := 0
	for _, r := range rows {
		if seen[r.UniqueID] {
			return nil, skipped, &DuplicateKeyError{Dataset: "email_campaigns", Key: r.UniqueID}
		}
		seen[r.UniqueID] = true

		ts, err := time.Parse(sendTSLayout, r.SendTS)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, models.EmailCampaign{
			UniqueID:     r.UniqueID,
			CampaignName: r.CampaignName,
			SendDate:     civil.DateOf(ts),
			SendTime:     ts.Format("15:04:05"),
			EmailsSent:   r.EmailsSent,
			Opens:        r.Opens,
			Clicks:       r.Clicks,
			Unsubscribes: r.Unsubscribes,
			Bounces:      r.Bounces,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UniqueID < out[j].UniqueID })
	return out, skipped, nil
}
