// Package review serves the vendor's ratings and comments screens.
package review

import (
	"context"
	"math"

	"backoffice-console/internal/apiclient"
	"backoffice-console/internal/role"
	"backoffice-console/internal/session"
)

type Rating struct {
	CustomerName string `json:"customerName"`
	Ranking      int    `json:"ranking"`
	CreatedAt    string `json:"createdAt"`
}

type Comment struct {
	CustomerName string `json:"customerName"`
	Comment      string `json:"comment"`
	CreatedAt    string `json:"createdAt"`
}

type RatingSummary struct {
	Average float64  `json:"average"`
	Count   int      `json:"count"`
	Ratings []Rating `json:"ratings"`
}

// Average is the mean ranking rounded to two decimals; zero when empty.
func Average(rs []Rating) float64 {
	if len(rs) == 0 {
		return 0
	}
	sum := 0
	for _, r := range rs {
		sum += r.Ranking
	}
	return math.Round(float64(sum)/float64(len(rs))*100) / 100
}

type Service interface {
	Ratings(ctx context.Context, s *session.Session) (*RatingSummary, error)
	Comments(ctx context.Context, s *session.Session) ([]Comment, error)
}

type service struct {
	api *apiclient.Client
}

func NewService(api *apiclient.Client) Service {
	return &service{api: api}
}

func (svc *service) Ratings(ctx context.Context, s *session.Session) (*RatingSummary, error) {
	if err := role.Require(s.User.Role, role.ViewReviews); err != nil {
		return nil, err
	}

	ratings := []Rating{}
	if err := svc.api.Get(ctx, s, apiclient.Path("RankingComments/vendorRatings/%s", s.User.ID), &ratings); err != nil {
		return nil, err
	}
	return &RatingSummary{Average: Average(ratings), Count: len(ratings), Ratings: ratings}, nil
}

func (svc *service) Comments(ctx context.Context, s *session.Session) ([]Comment, error) {
	if err := role.Require(s.User.Role, role.ViewReviews); err != nil {
		return nil, err
	}

	comments := []Comment{}
	if err := svc.api.Get(ctx, s, apiclient.Path("RankingComments/vendorComments/%s", s.User.ID), &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
