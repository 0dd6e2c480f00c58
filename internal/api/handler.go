package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shekel-labs/shekel-settlement/internal/db/model"
	"github.com/shekel-labs/shekel-settlement/internal/services"
	"github.com/shekel-labs/shekel-settlement/internal/types"
	"github.com/shekel-labs/shekel-settlement/pkg"
)

// SettlementService is the part of the service layer the api exposes.
type SettlementService interface {
	HealthCheck(ctx context.Context) *types.Error
	Initialize(ctx context.Context, signer types.Address, params services.NetworkParams) *types.Error
	SetNetworkConfig(ctx context.Context, signer types.Address, params services.NetworkParams) *types.Error
	GetNetworkConfig(ctx context.Context) (*model.NetworkConfig, *types.Error)
	Transact(ctx context.Context, req *services.TransactRequest) (*model.SettlementDocument, *types.Error)
	TransferPool(ctx context.Context, signer, destination types.Address, amount uint64) *types.Error
	TransferTreasury(ctx context.Context, signer, destination types.Address, amount uint64) *types.Error
	GetStats(ctx context.Context) (*services.StatsPublic, *types.Error)
	GetSettlement(ctx context.Context, id string) (*model.SettlementDocument, *types.Error)
	GetTokenAccount(ctx context.Context, address types.Address) (*model.TokenAccount, *types.Error)
	ListTokenAccounts(ctx context.Context, owner types.Address) ([]*model.TokenAccount, *types.Error)

	CreateTokenAccount(ctx context.Context, account *model.TokenAccount) *types.Error
	CreditTokenAccount(ctx context.Context, address types.Address, amount uint64) (*model.TokenAccount, *types.Error)
}

type Handler struct {
	service SettlementService
}

func NewHandler(service SettlementService) *Handler {
	return &Handler{service: service}
}

type transactRequestPayload struct {
	Source                   types.Address `json:"source"`
	SourceRewardAccount      types.Address `json:"source_reward_account"`
	Destination              types.Address `json:"destination"`
	DestinationRewardAccount types.Address `json:"destination_reward_account"`
	Amount                   uint64        `json:"amount"`
}

type transferRequestPayload struct {
	Destination types.Address `json:"destination"`
	Amount      uint64        `json:"amount"`
}

type createAccountRequestPayload struct {
	// random when empty
	Address *types.Address `json:"address,omitempty"`
	Owner   types.Address  `json:"owner"`
	AssetID types.Address  `json:"asset_id"`
	Balance uint64         `json:"balance"`
}

type creditRequestPayload struct {
	Amount uint64 `json:"amount"`
}

type statusResponse struct {
	Status string `json:"status"`
}

var okResponse = statusResponse{Status: "ok"}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.service.HealthCheck(r.Context()); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse)
}

func (h *Handler) Initialize(w http.ResponseWriter, r *http.Request) {
	var params services.NetworkParams
	if err := decodeBody(r, &params); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	if err := h.service.Initialize(r.Context(), signerFromContext(r.Context()), params); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, okResponse)
}

func (h *Handler) SetNetworkConfig(w http.ResponseWriter, r *http.Request) {
	var params services.NetworkParams
	if err := decodeBody(r, &params); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	if err := h.service.SetNetworkConfig(r.Context(), signerFromContext(r.Context()), params); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse)
}

func (h *Handler) GetNetworkConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.GetNetworkConfig(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *Handler) Transact(w http.ResponseWriter, r *http.Request) {
	var payload transactRequestPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	receipt, err := h.service.Transact(r.Context(), &services.TransactRequest{
		Owner:                    signerFromContext(r.Context()),
		Source:                   payload.Source,
		SourceRewardAccount:      payload.SourceRewardAccount,
		Destination:              payload.Destination,
		DestinationRewardAccount: payload.DestinationRewardAccount,
		Amount:                   payload.Amount,
	})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (h *Handler) TransferPool(w http.ResponseWriter, r *http.Request) {
	h.transfer(w, r, h.service.TransferPool)
}

func (h *Handler) TransferTreasury(w http.ResponseWriter, r *http.Request) {
	h.transfer(w, r, h.service.TransferTreasury)
}

func (h *Handler) transfer(
	w http.ResponseWriter,
	r *http.Request,
	move func(ctx context.Context, signer, destination types.Address, amount uint64) *types.Error,
) {
	var payload transferRequestPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	if err := move(r.Context(), signerFromContext(r.Context()), payload.Destination, payload.Amount); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) GetSettlement(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.GetSettlement(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) GetTokenAccount(w http.ResponseWriter, r *http.Request) {
	address, parseErr := types.ParseAddress(chi.URLParam(r, "address"))
	if parseErr != nil {
		writeError(r.Context(), w, types.NewError(http.StatusBadRequest, types.BadRequest, parseErr))
		return
	}
	account, err := h.service.GetTokenAccount(r.Context(), address)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *Handler) ListTokenAccounts(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("owner")
	if raw == "" {
		writeError(r.Context(), w, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "owner query parameter is required"))
		return
	}
	owner, parseErr := types.ParseAddress(raw)
	if parseErr != nil {
		writeError(r.Context(), w, types.NewError(http.StatusBadRequest, types.BadRequest, parseErr))
		return
	}
	accounts, err := h.service.ListTokenAccounts(r.Context(), owner)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (h *Handler) CreateTokenAccount(w http.ResponseWriter, r *http.Request) {
	var payload createAccountRequestPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	var address types.Address
	if payload.Address != nil {
		address = *payload.Address
	} else {
		raw, randErr := pkg.RandomAddressString()
		if randErr != nil {
			writeError(r.Context(), w, types.NewInternalServiceError(randErr))
			return
		}
		parsed, parseErr := types.ParseAddress(raw)
		if parseErr != nil {
			writeError(r.Context(), w, types.NewInternalServiceError(parseErr))
			return
		}
		address = parsed
	}

	account := model.NewTokenAccount(address, payload.Owner, payload.AssetID, payload.Balance)
	if err := h.service.CreateTokenAccount(r.Context(), account); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (h *Handler) CreditTokenAccount(w http.ResponseWriter, r *http.Request) {
	address, parseErr := types.ParseAddress(chi.URLParam(r, "address"))
	if parseErr != nil {
		writeError(r.Context(), w, types.NewError(http.StatusBadRequest, types.BadRequest, parseErr))
		return
	}
	var payload creditRequestPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(r.Context(), w, err)
		return
	}
	account, err := h.service.CreditTokenAccount(r.Context(), address, payload.Amount)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func decodeBody(r *http.Request, v any) *types.Error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return types.NewError(http.StatusBadRequest, types.BadRequest, err)
	}
	return nil
}
