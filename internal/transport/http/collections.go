package http

import (
	"fmt"
	"net/http"

	"github.com/uneeddev/agencydesk/internal/models"
	"github.com/uneeddev/agencydesk/internal/reports"
	"github.com/uneeddev/agencydesk/internal/service"
)

// splitWarning is the advisory message for over-allocated revenue splits.
const splitWarning = "split total exceeds the transaction amount"

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, h.svc.Projects())
}

func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	var in service.ProjectInput
	if err := decode(r, &in); err != nil {
		respondError(w, err)
		return
	}
	project, err := h.svc.CreateProject(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, project)
}

func (h *Handler) updateProject(w http.ResponseWriter, r *http.Request) {
	var in service.ProjectInput
	if err := decode(r, &in); err != nil {
		respondError(w, err)
		return
	}
	project, err := h.svc.UpdateProject(r.Context(), r.PathValue("id"), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, project)
}

func (h *Handler) deleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProject(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

// transactionView is a transaction with its project reference resolved for
// display. A dangling reference resolves to the placeholder.
type transactionView struct {
	models.Transaction
	ProjectName string `json:"projectName"`
	Warning     string `json:"warning,omitempty"`
}

func (h *Handler) transactionViews() []transactionView {
	projects := h.svc.Projects()
	transactions := h.svc.Transactions()

	views := make([]transactionView, len(transactions))
	for i, t := range transactions {
		views[i] = transactionView{
			Transaction: t,
			ProjectName: reports.ProjectName(projects, t.ProjectID),
		}
		if t.OverAllocated() {
			views[i].Warning = splitWarning
		}
	}
	return views
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, h.transactionViews())
}

func transactionResponse(tx models.Transaction) transactionView {
	view := transactionView{Transaction: tx}
	if tx.OverAllocated() {
		view.Warning = splitWarning
	}
	return view
}

func (h *Handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	var in service.TransactionInput
	if err := decode(r, &in); err != nil {
		respondError(w, err)
		return
	}
	tx, err := h.svc.CreateTransaction(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, transactionResponse(tx))
}

func (h *Handler) updateTransaction(w http.ResponseWriter, r *http.Request) {
	var in service.TransactionInput
	if err := decode(r, &in); err != nil {
		respondError(w, err)
		return
	}
	tx, err := h.svc.UpdateTransaction(r.Context(), r.PathValue("id"), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, transactionResponse(tx))
}

func (h *Handler) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTransaction(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (h *Handler) listMembers(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, h.svc.TeamMembers())
}

func (h *Handler) createMember(w http.ResponseWriter, r *http.Request) {
	var in service.MemberInput
	if err := decode(r, &in); err != nil {
		respondError(w, err)
		return
	}
	member, err := h.svc.CreateTeamMember(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, member)
}

func (h *Handler) updateMember(w http.ResponseWriter, r *http.Request) {
	var in service.MemberInput
	if err := decode(r, &in); err != nil {
		respondError(w, err)
		return
	}
	member, err := h.svc.UpdateTeamMember(r.Context(), r.PathValue("id"), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, member)
}

func (h *Handler) deleteMember(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTeamMember(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

// Form staging endpoints. The collection segment selects which of the three
// independent drafts is addressed.

func (h *Handler) formState(w http.ResponseWriter, r *http.Request) {
	switch r.PathValue("collection") {
	case "project":
		respond(w, http.StatusOK, h.svc.ProjectForm())
	case "transaction":
		respond(w, http.StatusOK, h.svc.TransactionForm())
	case "member":
		respond(w, http.StatusOK, h.svc.MemberForm())
	default:
		respondError(w, fmt.Errorf("%w: unknown form %q", service.ErrNotFound, r.PathValue("collection")))
	}
}

func (h *Handler) formOpen(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EditingID string `json:"editingId"`
	}
	if r.ContentLength > 0 {
		if err := decode(r, &req); err != nil {
			respondError(w, err)
			return
		}
	}

	var err error
	switch r.PathValue("collection") {
	case "project":
		if req.EditingID == "" {
			h.svc.OpenAddProject()
		} else {
			err = h.svc.OpenEditProject(req.EditingID)
		}
	case "transaction":
		if req.EditingID == "" {
			h.svc.OpenAddTransaction()
		} else {
			err = h.svc.OpenEditTransaction(req.EditingID)
		}
	case "member":
		if req.EditingID == "" {
			h.svc.OpenAddMember()
		} else {
			err = h.svc.OpenEditMember(req.EditingID)
		}
	default:
		err = fmt.Errorf("%w: unknown form %q", service.ErrNotFound, r.PathValue("collection"))
	}
	if err != nil {
		respondError(w, err)
		return
	}
	h.formState(w, r)
}

func (h *Handler) formDraft(w http.ResponseWriter, r *http.Request) {
	switch r.PathValue("collection") {
	case "project":
		var in service.ProjectInput
		if err := decode(r, &in); err != nil {
			respondError(w, err)
			return
		}
		h.svc.SetProjectDraft(in)
	case "transaction":
		var in service.TransactionInput
		if err := decode(r, &in); err != nil {
			respondError(w, err)
			return
		}
		h.svc.SetTransactionDraft(in)
	case "member":
		var in service.MemberInput
		if err := decode(r, &in); err != nil {
			respondError(w, err)
			return
		}
		h.svc.SetMemberDraft(in)
	default:
		respondError(w, fmt.Errorf("%w: unknown form %q", service.ErrNotFound, r.PathValue("collection")))
		return
	}
	h.formState(w, r)
}

func (h *Handler) formSubmit(w http.ResponseWriter, r *http.Request) {
	switch r.PathValue("collection") {
	case "project":
		project, err := h.svc.SubmitProjectForm(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respond(w, http.StatusOK, project)
	case "transaction":
		tx, err := h.svc.SubmitTransactionForm(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respond(w, http.StatusOK, transactionResponse(tx))
	case "member":
		member, err := h.svc.SubmitMemberForm(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respond(w, http.StatusOK, member)
	default:
		respondError(w, fmt.Errorf("%w: unknown form %q", service.ErrNotFound, r.PathValue("collection")))
	}
}

func (h *Handler) formCancel(w http.ResponseWriter, r *http.Request) {
	switch r.PathValue("collection") {
	case "project":
		h.svc.CancelProjectForm()
	case "transaction":
		h.svc.CancelTransactionForm()
	case "member":
		h.svc.CancelMemberForm()
	default:
		respondError(w, fmt.Errorf("%w: unknown form %q", service.ErrNotFound, r.PathValue("collection")))
		return
	}
	respond(w, http.StatusNoContent, nil)
}
