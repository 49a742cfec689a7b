package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// States lists all states for the manual location picker.
func (c *Client) States(ctx context.Context) ([]State, error) {
	var states []State
	if err := c.get(ctx, "/locations/states", nil, &states); err != nil {
		return nil, err
	}
	return states, nil
}

// CitiesForState lists the cities of one state.
func (c *Client) CitiesForState(ctx context.Context, stateID int) ([]City, error) {
	var cities []City
	if err := c.get(ctx, fmt.Sprintf("/locations/cities/%d", stateID), nil, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// MarketsForCity lists the market areas of one city.
func (c *Client) MarketsForCity(ctx context.Context, cityID int) ([]Market, error) {
	var markets []Market
	if err := c.get(ctx, fmt.Sprintf("/locations/markets/%d", cityID), nil, &markets); err != nil {
		return nil, err
	}
	return markets, nil
}

// NearbyMarkets lists market areas within radiusKm of a GPS fix.
func (c *Client) NearbyMarkets(ctx context.Context, lat, lon, radiusKm float64) ([]MarketArea, error) {
	v := url.Values{}
	v.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	v.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	v.Set("radius_km", strconv.FormatFloat(radiusKm, 'f', -1, 64))
	var markets []MarketArea
	if err := c.get(ctx, "/locations/markets/nearby", v, &markets); err != nil {
		return nil, err
	}
	return markets, nil
}

// StateInfo resolves a GPS fix to its state and the largest search radius
// that stays inside it. The radius advisor refetches this on every
// coordinate change.
func (c *Client) StateInfo(ctx context.Context, lat, lon float64) (StateInfo, error) {
	v := url.Values{}
	v.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	v.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	var info StateInfo
	if err := c.get(ctx, "/locations/state-info", v, &info); err != nil {
		return StateInfo{}, err
	}
	return info, nil
}
