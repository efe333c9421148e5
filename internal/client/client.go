// Package client talks to the job API over HTTP. Every failure is returned
// as an *Error classified into one of four kinds.
package client

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/fadilmartias/job-portal/internal/dto"
	"github.com/go-resty/resty/v2"
)

type Client struct {
	http *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

func (c *Client) Health(ctx context.Context) (dto.HealthResponse, error) {
	var out dto.HealthResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/health")
	return out, classify(resp, err)
}

// ListJobs fetches postings. Empty filter fields are not sent.
func (c *Client) ListJobs(ctx context.Context, filter dto.JobFilter) ([]dto.JobPostingDTO, error) {
	var out []dto.JobPostingDTO
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(queryParams(filter)).
		SetResult(&out).
		Get("/api/jobs")
	if err := classify(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetJob(ctx context.Context, id uint) (dto.JobPostingDTO, error) {
	var out dto.JobPostingDTO
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatUint(uint64(id), 10)).
		SetResult(&out).
		Get("/api/jobs/{id}")
	return out, classify(resp, err)
}

func (c *Client) CreateJob(ctx context.Context, req dto.JobPostingRequest) (dto.CreateJobResponse, error) {
	var out dto.CreateJobResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&out).
		Post("/api/jobs")
	return out, classify(resp, err)
}

func queryParams(filter dto.JobFilter) map[string]string {
	params := map[string]string{}
	add := func(key, value string) {
		if value != "" {
			params[key] = value
		}
	}
	add("job_title", filter.JobTitle)
	add("location", filter.Location)
	add("job_type", filter.JobType)
	add("salary_min", filter.SalaryMin)
	add("salary_max", filter.SalaryMax)
	return params
}
