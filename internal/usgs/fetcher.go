package usgs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/riverwatch/tempcache/internal/models"
	"github.com/riverwatch/tempcache/pkg/http/client"
)

// ParameterWaterTemp is the USGS parameter code for water temperature,
// degrees Celsius.
const ParameterWaterTemp = "00010"

const dailyValuesPath = "/nwis/dv/"

type Client struct {
	httpClient client.Interface
}

func NewClient(httpClient client.Interface) *Client {
	return &Client{httpClient: httpClient}
}

// dvResponse mirrors the slice of the daily-values payload we navigate.
// Every level is optional: a missing link anywhere in the chain means the
// site has no data, not that the response is malformed.
type dvResponse struct {
	Value struct {
		TimeSeries []struct {
			Values []struct {
				Value []observation `json:"value"`
			} `json:"values"`
		} `json:"timeSeries"`
	} `json:"value"`
}

type observation struct {
	Value    string `json:"value"`
	DateTime string `json:"dateTime"`
}

// FetchDailyTemps requests the daily water temperature series for one site
// over an inclusive date range. An empty series is a normal outcome; any
// transport, status, or decoding failure comes back as a *FetchError.
func (c *Client) FetchDailyTemps(ctx context.Context, siteNo, startDate, endDate string) (models.ObservationSeries, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("sites", siteNo)
	params.Set("parameterCd", ParameterWaterTemp)
	params.Set("startDT", startDate)
	params.Set("endDT", endDate)

	resp, err := c.httpClient.Get(ctx, dailyValuesPath+"?"+params.Encode())
	if err != nil {
		return models.ObservationSeries{}, NewFetchError(siteNo, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.ObservationSeries{}, NewFetchError(siteNo, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var dv dvResponse
	if err := json.Unmarshal(resp.Body, &dv); err != nil {
		return models.ObservationSeries{}, NewFetchError(siteNo, fmt.Errorf("decoding response: %w", err))
	}

	return extractSeries(dv), nil
}

// extractSeries walks value.timeSeries[0].values[0].value. Observations
// with a blank or unparsable value are dropped entirely, label included,
// so the two sequences stay index-aligned.
func extractSeries(dv dvResponse) models.ObservationSeries {
	var series models.ObservationSeries

	ts := dv.Value.TimeSeries
	if len(ts) == 0 || len(ts[0].Values) == 0 {
		return series
	}

	for _, obs := range ts[0].Values[0].Value {
		if obs.Value == "" || obs.Value == " " {
			continue
		}

		temp, err := strconv.ParseFloat(obs.Value, 64)
		if err != nil {
			continue
		}

		series.Labels = append(series.Labels, dateLabel(obs.DateTime))
		series.Temps = append(series.Temps, temp)
	}

	return series
}

// dateLabel cuts a timestamp down to calendar-date granularity. Values
// shorter than a full date pass through unmodified.
func dateLabel(ts string) string {
	if len(ts) > 10 {
		return ts[:10]
	}
	return ts
}
