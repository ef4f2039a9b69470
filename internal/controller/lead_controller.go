package controller

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"meetowner_crm/internal/middleware"
	"meetowner_crm/internal/model"
	"meetowner_crm/internal/service"
	"meetowner_crm/pkg/apperror"
	"meetowner_crm/pkg/email"
)

const mailTimeout = 10 * time.Second

type LeadController struct {
	leads      *service.LeadService
	mailer     email.Mailer
	adminTypes []uint
}

// NewLeadController wires the handlers. mailer may be nil. adminTypes may
// act for any tenant.
func NewLeadController(leads *service.LeadService, mailer email.Mailer, adminTypes []uint) *LeadController {
	return &LeadController{leads: leads, mailer: mailer, adminTypes: adminTypes}
}

// authorize checks the parsed identity pair against the token.
func (lc *LeadController) authorize(c *fiber.Ctx, userType, userID service.Number) error {
	return middleware.Authorize(c, lc.adminTypes, userType.Ptr(), userID.Ptr())
}

func (lc *LeadController) authorizeScope(c *fiber.Ctx, scope service.Scope) error {
	return middleware.Authorize(c, lc.adminTypes, &scope.UserType, &scope.UserID)
}

func (lc *LeadController) CreateLead(c *fiber.Ctx) error {
	input := new(service.CreateLeadInput)
	if err := c.BodyParser(input); err != nil {
		return invalidBody()
	}
	if err := lc.authorize(c, input.LeadAddedUserType, input.LeadAddedUserID); err != nil {
		return err
	}

	id, err := lc.leads.CreateLead(c.UserContext(), *input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Lead created successfully",
		"lead_id": id,
	})
}

func (lc *LeadController) ListLeads(c *fiber.Ctx) error {
	scope, err := scopeFromQuery(c)
	if err != nil {
		return err
	}
	if err := lc.authorizeScope(c, scope); err != nil {
		return err
	}
	status, err := service.ParseStatusFilter(c.Query("view"), c.Query("status_id"))
	if err != nil {
		return err
	}
	assignee, err := assigneeFromQuery(c)
	if err != nil {
		return err
	}

	leads, err := lc.leads.ListLeads(c.UserContext(), scope, service.LeadFilter{Status: status, Assignee: assignee})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"count":   len(leads),
		"results": leads,
	})
}

func (lc *LeadController) ListBookedLeads(c *fiber.Ctx) error {
	scope, err := scopeFromQuery(c)
	if err != nil {
		return err
	}
	if err := lc.authorizeScope(c, scope); err != nil {
		return err
	}
	assignee, err := assigneeFromQuery(c)
	if err != nil {
		return err
	}

	filter := service.BookedFilter{Assignee: assignee}
	if raw := c.Query("lead_id"); raw != "" {
		id, err := parseUint(raw, "lead_id")
		if err != nil {
			return err
		}
		filter.LeadID = &id
	}

	leads, err := lc.leads.ListBookedLeads(c.UserContext(), scope, filter)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"count":   len(leads),
		"results": leads,
	})
}

func (lc *LeadController) AssignLead(c *fiber.Ctx) error {
	leadID, err := leadIDParam(c)
	if err != nil {
		return err
	}

	input := new(service.AssignLeadInput)
	if err := c.BodyParser(input); err != nil {
		return invalidBody()
	}
	if err := lc.authorize(c, input.LeadAddedUserType, input.LeadAddedUserID); err != nil {
		return err
	}

	lead, err := lc.leads.AssignLead(c.UserContext(), leadID, *input)
	if err != nil {
		return err
	}

	lc.notifyAssignee(lead)

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Lead assigned successfully",
		"lead":    lead,
	})
}

// notifyAssignee emails the new assignee. Failures are logged only.
func (lc *LeadController) notifyAssignee(lead *model.Lead) {
	if lc.mailer == nil || lead.AssignedID == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
	defer cancel()

	user, err := lc.leads.FindUser(ctx, *lead.AssignedID)
	if err != nil || user.Email == "" {
		log.Warnf("No email for assignee %d of lead %d", *lead.AssignedID, lead.LeadID)
		return
	}

	data := email.LeadAssignedData{
		AssigneeName:  user.Name,
		LeadID:        lead.LeadID,
		CustomerName:  lead.CustomerName,
		CustomerPhone: lead.CustomerPhoneNumber,
		CustomerEmail: lead.CustomerEmail,
		ProjectName:   lead.InterestedProjectName,
	}
	if lead.AssignedPriority != nil {
		data.Priority = *lead.AssignedPriority
	}
	if lead.NextAction != nil {
		data.NextAction = *lead.NextAction
	}

	if err := lc.mailer.SendLeadAssignedEmail(ctx, user.Email, data); err != nil {
		log.Errorf("Could not send lead assignment email: %v", err)
	}
}

func (lc *LeadController) RecordUpdate(c *fiber.Ctx) error {
	leadID, err := leadIDParam(c)
	if err != nil {
		return err
	}

	input := new(service.RecordUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return invalidBody()
	}
	if err := lc.authorize(c, input.UpdatedByEmpType, input.UpdatedByEmpID); err != nil {
		return err
	}

	update, err := lc.leads.RecordUpdate(c.UserContext(), leadID, *input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":    "success",
		"message":   "Lead updated successfully",
		"update_id": update.ID,
		"update":    update,
	})
}

func (lc *LeadController) ListUpdates(c *fiber.Ctx) error {
	leadID, err := leadIDParam(c)
	if err != nil {
		return err
	}
	scope, err := scopeFromQuery(c)
	if err != nil {
		return err
	}
	if err := lc.authorizeScope(c, scope); err != nil {
		return err
	}

	updates, err := lc.leads.ListUpdates(c.UserContext(), leadID, scope)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"count":   len(updates),
		"results": updates,
	})
}

func (lc *LeadController) CompleteBooking(c *fiber.Ctx) error {
	leadID, err := leadIDParam(c)
	if err != nil {
		return err
	}

	input := new(service.CompleteBookingInput)
	if err := c.BodyParser(input); err != nil {
		return invalidBody()
	}
	if err := lc.authorize(c, input.LeadAddedUserType, input.LeadAddedUserID); err != nil {
		return err
	}

	result, err := lc.leads.CompleteBooking(c.UserContext(), leadID, *input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":    "success",
		"message":   "Lead booked successfully",
		"lead_id":   result.LeadID,
		"booked_id": result.BookedID,
	})
}

func invalidBody() error {
	return apperror.Validation("Invalid request body")
}

func parseUint(raw, field string) (uint, error) {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperror.Validation(field+" must be a valid integer", field)
	}
	return uint(v), nil
}

func leadIDParam(c *fiber.Ctx) (uint, error) {
	return parseUint(c.Params("id"), "lead_id")
}

// scopeFromQuery reads the owning tenant from lead_added_user_type and
// lead_added_user_id.
func scopeFromQuery(c *fiber.Ctx) (service.Scope, error) {
	rawType, rawID := c.Query("lead_added_user_type"), c.Query("lead_added_user_id")

	var missing []string
	if rawType == "" {
		missing = append(missing, "lead_added_user_type")
	}
	if rawID == "" {
		missing = append(missing, "lead_added_user_id")
	}
	if len(missing) > 0 {
		return service.Scope{}, apperror.MissingFields(missing...)
	}

	userType, err := parseUint(rawType, "lead_added_user_type")
	if err != nil {
		return service.Scope{}, err
	}
	userID, err := parseUint(rawID, "lead_added_user_id")
	if err != nil {
		return service.Scope{}, err
	}
	return service.Scope{UserType: userType, UserID: userID}, nil
}

// assigneeFromQuery returns nil when neither assignee parameter is set.
func assigneeFromQuery(c *fiber.Ctx) (*service.Assignee, error) {
	rawType, rawID := c.Query("assigned_user_type"), c.Query("assigned_id")
	if rawType == "" && rawID == "" {
		return nil, nil
	}
	if rawType == "" || rawID == "" {
		return nil, apperror.Validation("assigned_user_type and assigned_id must be given together",
			"assigned_user_type", "assigned_id")
	}

	userType, err := parseUint(rawType, "assigned_user_type")
	if err != nil {
		return nil, err
	}
	id, err := parseUint(rawID, "assigned_id")
	if err != nil {
		return nil, err
	}
	return &service.Assignee{UserType: userType, ID: id}, nil
}
