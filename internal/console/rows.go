package console

import (
	"strconv"
	"strings"

	"ewaste-admin-console/internal/model"
)

type Action string

const (
	ActionPromote Action = "promote"
	ActionDelete  Action = "delete"
	ActionUpdate  Action = "update"
)

// Panels, which double as tab identifiers.
const (
	PanelUsers  = "users"
	PanelOrders = "orders"
)

const placeholderLabel = "—"

// Button is a row action. ID is the record identifier the action targets
// and may be empty when the record has none.
type Button struct {
	Label  string
	Action Action
	ID     string
	Email  string
	Style  string
}

type Row struct {
	Title    string
	Subtitle string
	Details  string
	Status   string
	Buttons  []Button
}

func userRow(u model.User) Row {
	title := u.FullName
	if title == "" {
		title = placeholderLabel
	}

	var details []string
	if u.Phone != "" {
		details = append(details, u.Phone)
	}
	if u.City != "" {
		details = append(details, "• "+u.City)
	}

	return Row{
		Title:    title,
		Subtitle: u.Email,
		Details:  strings.Join(details, " "),
		Buttons: []Button{
			{Label: "Promote", Action: ActionPromote, ID: u.ID, Email: u.Email},
			{Label: "Delete", Action: ActionDelete, ID: u.ID, Style: "danger"},
		},
	}
}

func orderRow(o model.Order) Row {
	title := o.OrderID
	if title == "" {
		title = placeholderLabel
	}

	return Row{
		Title:    title,
		Subtitle: o.WasteType + " • " + strconv.FormatFloat(o.Quantity, 'f', -1, 64) + " " + o.Unit,
		Details:  "Owner: " + o.OwnerLabel(),
		Status:   o.Status,
		Buttons: []Button{
			{Label: "Next", Action: ActionUpdate, ID: o.OrderID, Style: "primary"},
			{Label: "Delete", Action: ActionDelete, ID: o.OrderID, Style: "danger"},
		},
	}
}
