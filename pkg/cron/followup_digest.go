package cron

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"meetowner_crm/internal/model"
	"meetowner_crm/pkg/email"
)

const digestTimeout = 5 * time.Minute

// InitFollowUpDigestCron schedules the daily follow-up digest. It returns a
// nil scheduler when email is disabled.
func InitFollowUpDigestCron(spec string, loc *time.Location, db *gorm.DB, mailer email.Mailer) (*cron.Cron, error) {
	if mailer == nil {
		log.Info("Email service not configured, follow-up digest disabled")
		return nil, nil
	}

	c := cron.New(cron.WithLocation(loc))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
		defer cancel()

		today := time.Now().In(loc).Format("2006-01-02")
		sent, err := SendFollowUpDigest(ctx, db, mailer, today)
		if err != nil {
			log.Errorf("Follow-up digest failed: %v", err)
			return
		}
		log.Infof("Follow-up digest sent to %d assignees", sent)
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}

type digestRow struct {
	LeadID                uint
	CustomerName          string
	CustomerPhoneNumber   string
	InterestedProjectName string
	NextAction            string
	AssignedID            uint
	AssigneeName          string
	AssigneeEmail         string
}

// SendFollowUpDigest mails every assignee the unbooked leads that still have
// a next action. It returns the number of digests delivered; one failed send
// does not stop the rest.
func SendFollowUpDigest(ctx context.Context, db *gorm.DB, mailer email.Mailer, today string) (int, error) {
	var rows []digestRow
	err := db.WithContext(ctx).
		Table("leads AS l").
		Select(`l.lead_id, l.customer_name, l.customer_phone_number, l.interested_project_name,
			l.next_action, l.assigned_id, u.name AS assignee_name, u.email AS assignee_email`).
		Joins("JOIN crm_users u ON u.id = l.assigned_id").
		Where("l.booked = ? AND l.next_action IS NOT NULL AND l.next_action <> ''", model.NoValue).
		Order("l.assigned_id, l.lead_id").
		Scan(&rows).Error
	if err != nil {
		return 0, err
	}

	var (
		digests []email.FollowUpDigestData
		to      []string
		last    uint
	)
	for _, r := range rows {
		if r.AssigneeEmail == "" {
			continue
		}
		if len(digests) == 0 || r.AssignedID != last {
			digests = append(digests, email.FollowUpDigestData{AssigneeName: r.AssigneeName, Date: today})
			to = append(to, r.AssigneeEmail)
			last = r.AssignedID
		}
		d := &digests[len(digests)-1]
		d.Leads = append(d.Leads, email.DigestLead{
			LeadID:       r.LeadID,
			CustomerName: r.CustomerName,
			Phone:        r.CustomerPhoneNumber,
			ProjectName:  r.InterestedProjectName,
			NextAction:   r.NextAction,
		})
	}

	sent := 0
	for i, d := range digests {
		if err := mailer.SendFollowUpDigest(ctx, to[i], d); err != nil {
			log.Errorf("Error sending follow-up digest to %s: %v", to[i], err)
			continue
		}
		sent++
	}
	return sent, nil
}
