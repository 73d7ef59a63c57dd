package handler

import (
	"net/http"
	"sort"
	"time"

	"bedmatch/backend/internal/matching"
	"bedmatch/backend/internal/models"
	"bedmatch/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// TenantMatch is one row of the ranked compatibility list.
type TenantMatch struct {
	TenantID      string  `json:"tenant_id"`
	BedID         string  `json:"bed_id"`
	Compatibility float64 `json:"compatibility"`
}

type activeTenantsRequest struct {
	PropertyID string `json:"property_id" binding:"required"`
}

// GetActiveTenants returns, for every bed of a property, the tenants with a
// live interest request ranked by compatibility score, best match first.
func (h *Handler) GetActiveTenants(c *gin.Context) {
	id, err := h.validateToken(bearerToken(c))
	if err != nil || id.Role != models.RoleLandlord {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "landlord token required"})
		return
	}

	var req activeTenantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property_id is required"})
		return
	}

	ctx := c.Request.Context()
	beds, err := h.Store.GetPropertyBeds(ctx, req.PropertyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load property beds"})
		return
	}

	matches := make([]TenantMatch, 0)
	for _, bed := range beds {
		tenantIDs, err := h.Store.GetInterestedTenantIDs(ctx, bed.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load interested tenants"})
			return
		}
		if len(tenantIDs) == 0 {
			continue
		}

		base, bedLevel, err := h.Store.GetPreferenceRankings(ctx, bed.LandlordID, bed.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load preferences"})
			return
		}
		rankings := matching.Applicable(base, bedLevel)

		for _, tenantID := range tenantIDs {
			profile, err := h.Store.GetPersonalityProfile(ctx, tenantID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tenant profile"})
				return
			}
			matches = append(matches, TenantMatch{
				TenantID:      tenantID,
				BedID:         bed.ID,
				Compatibility: matching.Score(profile, rankings),
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Compatibility > matches[j].Compatibility
	})
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

type appointmentHistoryRequest struct {
	TenantID   string `json:"tenant_id"`
	LandlordID string `json:"landlord_id"`
	BedID      string `json:"bed_id"`
	Status     string `json:"status"`
	From       string `json:"from"` // RFC 3339
}

func (r appointmentHistoryRequest) filter() (storage.AppointmentFilter, error) {
	f := storage.AppointmentFilter{
		TenantID:   r.TenantID,
		LandlordID: r.LandlordID,
		BedID:      r.BedID,
		Status:     models.AppointmentStatus(r.Status),
	}
	if r.From != "" {
		from, err := time.Parse(time.RFC3339, r.From)
		if err != nil {
			return f, err
		}
		f.From = &from
	}
	return f, nil
}

// GetTenantAppointments returns a tenant's appointment history filtered by
// status, bed and date.
func (h *Handler) GetTenantAppointments(c *gin.Context) {
	h.appointmentHistory(c, models.RoleTenant)
}

// GetLandlordAppointments is the landlord-side twin.
func (h *Handler) GetLandlordAppointments(c *gin.Context) {
	h.appointmentHistory(c, models.RoleLandlord)
}

func (h *Handler) appointmentHistory(c *gin.Context, role string) {
	id, err := h.validateToken(bearerToken(c))
	if err != nil || id.Role != role {
		c.JSON(http.StatusUnauthorized, gin.H{"error": role + " token required"})
		return
	}

	var req appointmentHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	// Callers only see their own history.
	if role == models.RoleTenant {
		req.TenantID = id.UserID
	} else {
		req.LandlordID = id.UserID
	}

	filter, err := req.filter()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be RFC 3339"})
		return
	}

	appts, err := h.Store.ListAppointments(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load appointments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}
