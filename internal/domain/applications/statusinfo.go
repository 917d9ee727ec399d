package applications

// StatusInfo es el descriptor legible que acompaña a cada solicitud en el
// listado del adoptante: etiqueta + mensaje explicativo + hints de UI.
type StatusInfo struct {
	Label      string `json:"label"`
	Message    string `json:"message"`
	BadgeClass string `json:"badge_class"`
	Action     string `json:"action,omitempty"`
}

// statusInfos es una tabla fija keyed por status.
var statusInfos = map[Status]StatusInfo{
	StatusPending: {
		Label:      "Pending Review",
		Message:    "Your application is being reviewed by the shelter. You will be notified of the decision soon.",
		BadgeClass: "badge-pending",
	},
	StatusApproved: {
		Label:      "Approved",
		Message:    "Congratulations! Your application has been approved. Please contact the shelter to finalize the adoption.",
		BadgeClass: "badge-approved",
		Action:     "Contact Shelter",
	},
	StatusRejected: {
		Label:      "Not Approved",
		Message:    "Unfortunately, your application was not approved. Please explore other pets available for adoption.",
		BadgeClass: "badge-rejected",
		Action:     "Browse Pets",
	},
	StatusCompleted: {
		Label:      "Completed",
		Message:    "Adoption completed! We hope you and your pet have a wonderful life together.",
		BadgeClass: "badge-completed",
	},
}

// InfoFor devuelve el descriptor para un status; para valores fuera de la
// tabla devuelve un default genérico.
func InfoFor(s Status) StatusInfo {
	if info, ok := statusInfos[s]; ok {
		return info
	}
	return StatusInfo{Label: string(s), BadgeClass: "badge-default"}
}
