package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/retailops/locator/internal/pkg/logger"
	"github.com/retailops/locator/internal/pkg/models"
	"github.com/retailops/locator/services/locator"
)

const statusOK = "OK"

// MatrixGW calls the external road-distance matrix service
type MatrixGW struct {
	cfg        models.MapsConfig
	httpClient *http.Client
}

// NewMatrixGW creates a new distance matrix gateway
func NewMatrixGW(cfg models.MapsConfig) locator.RouteMatrixGW {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &MatrixGW{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type matrixElement struct {
	Status   string `json:"status"`
	Distance *struct {
		Value int64  `json:"value"`
		Text  string `json:"text"`
	} `json:"distance"`
}

type matrixRow struct {
	Elements []matrixElement `json:"elements"`
}

type matrixResponse struct {
	Status string      `json:"status"`
	Rows   []matrixRow `json:"rows"`
}

// NearestByRoad issues one distance matrix request with the origin as sole
// source and each candidate as a destination, and returns the candidate
// with the minimum reported road distance. Single attempt; retry policy
// belongs to the caller.
func (g *MatrixGW) NearestByRoad(ctx context.Context, origin models.Coordinate, candidates []models.StoreRecord) (*models.StoreRecord, error) {
	if len(candidates) == 0 {
		return nil, locator.ErrNoRoute
	}

	dests := make([]string, len(candidates))
	for i, c := range candidates {
		dests[i] = fmt.Sprintf("%f,%f", c.Latitude, c.Longitude)
	}

	params := url.Values{}
	params.Set("origins", fmt.Sprintf("%f,%f", origin.Latitude, origin.Longitude))
	params.Set("destinations", strings.Join(dests, "|"))
	if g.cfg.APIKey != "" {
		params.Set("key", g.cfg.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.MatrixURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", locator.ErrRefinementUnavailable, err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", locator.ErrRefinementUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: http status %d", locator.ErrRefinementUnavailable, resp.StatusCode)
	}

	var body matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", locator.ErrRefinementUnavailable, err)
	}

	if body.Status != statusOK {
		return nil, fmt.Errorf("%w: api status %s", locator.ErrRefinementUnavailable, body.Status)
	}

	if len(body.Rows) == 0 {
		return nil, locator.ErrNoRoute
	}

	elements := body.Rows[0].Elements
	minIndex := -1
	var minDist int64
	for i, el := range elements {
		if i >= len(candidates) {
			break
		}
		if el.Status != statusOK || el.Distance == nil {
			continue
		}
		if minIndex == -1 || el.Distance.Value < minDist {
			minIndex = i
			minDist = el.Distance.Value
		}
	}

	if minIndex == -1 {
		return nil, locator.ErrNoRoute
	}

	logger.Debug("Refinement selected store",
		logger.String("store_num", candidates[minIndex].StoreNum),
		logger.Int64("road_distance_m", minDist))

	return &candidates[minIndex], nil
}
