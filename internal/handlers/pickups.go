package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urbanmorph/dispatch-service/internal/database"
)

// ListPickupsRequest represents query parameters for listing pickups
type ListPickupsRequest struct {
	Status string `form:"status"`
	Limit  int    `form:"limit" binding:"min=0,max=500"`
	Offset int    `form:"offset" binding:"min=0"`
}

// ListPickupsResponse represents the pickup listing response
type ListPickupsResponse struct {
	Pickups []database.PickupRow `json:"pickups"`
	Total   int                  `json:"total"`
}

// ListPickups returns pickup requests, optionally filtered by status
// GET /internal/pickups?status=verified&limit=100&offset=0
func ListPickups(c *gin.Context) {
	var req ListPickupsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Limit == 0 {
		req.Limit = 100
	}

	pool := database.Pool()
	if pool == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not initialized"})
		return
	}
	ctx := c.Request.Context()

	countQuery := `SELECT COUNT(*) FROM pickups`
	listQuery := `
		SELECT id, pickup_number, org_name, status, est_weight_kg, est_volume_m3,
		       latitude, longitude, requested_at, created_at
		FROM pickups
	`
	args := []interface{}{}
	if req.Status != "" {
		countQuery += ` WHERE status = $1`
		listQuery += ` WHERE status = $1`
		args = append(args, req.Status)
	}
	listQuery += ` ORDER BY requested_at, id`

	var total int
	if err := pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count pickups"})
		return
	}

	if req.Status != "" {
		listQuery += ` LIMIT $2 OFFSET $3`
	} else {
		listQuery += ` LIMIT $1 OFFSET $2`
	}
	args = append(args, req.Limit, req.Offset)

	rows, err := pool.Query(ctx, listQuery, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pickups"})
		return
	}
	defer rows.Close()

	pickups := []database.PickupRow{}
	for rows.Next() {
		var p database.PickupRow
		err := rows.Scan(
			&p.ID, &p.PickupNumber, &p.OrgName, &p.Status,
			&p.EstWeightKg, &p.EstVolumeM3, &p.Latitude, &p.Longitude,
			&p.RequestedAt, &p.CreatedAt,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan pickup"})
			return
		}
		pickups = append(pickups, p)
	}
	if rows.Err() != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating pickups"})
		return
	}

	c.JSON(http.StatusOK, ListPickupsResponse{Pickups: pickups, Total: total})
}
