package service

import (
	"time"

	"monitoring-demo/internal/metrics"
)

// Hashtags are the tags trending lists are drawn from.
var Hashtags = []string{
	"TechNews", "AI", "WebDev", "Docker", "Monitoring",
	"DevOps", "CloudComputing", "DataScience", "MachineLearning", "Kubernetes",
}

// Platforms in dashboard order.
var Platforms = []string{"facebook", "instagram", "twitter", "tiktok"}

// platformProfile bounds the figures drawn for a platform's dashboard card.
// Instagram cards show comments where the others show shares.
type platformProfile struct {
	followers, posts, likes, interactions IntRange
	engagement                            Range
	comments                              bool
}

var platformProfiles = map[string]platformProfile{
	"facebook":  {IntRange{10000, 100000}, IntRange{5, 25}, IntRange{500, 5000}, IntRange{50, 500}, Range{2, 8}, false},
	"instagram": {IntRange{15000, 150000}, IntRange{3, 15}, IntRange{800, 8000}, IntRange{100, 1000}, Range{3, 12}, true},
	"twitter":   {IntRange{8000, 80000}, IntRange{10, 50}, IntRange{200, 2000}, IntRange{50, 800}, Range{1.5, 6}, false},
	"tiktok":    {IntRange{20000, 200000}, IntRange{2, 10}, IntRange{1000, 20000}, IntRange{100, 2000}, Range{5, 15}, false},
}

// PlatformStats is one platform card.
type PlatformStats struct {
	Platform   string
	Followers  int
	Posts      int
	Likes      int
	Shares     int
	Comments   int
	Engagement float64
}

// Hashtag is one trending entry.
type Hashtag struct {
	Tag   string
	Count int
}

// SocialOverview is what the social dashboard shows.
type SocialOverview struct {
	ActiveUsers int
	Platforms   []PlatformStats
	Trending    []Hashtag
}

// Social simulates activity across several social platforms.
type Social struct {
	deps Deps

	activeUsers *metrics.Gauge
	posts       *metrics.CounterVec
	likes       *metrics.CounterVec
	shares      *metrics.CounterVec
	comments    *metrics.CounterVec
	engagement  *metrics.GaugeVec
	followers   *metrics.GaugeVec
}

func NewSocial(deps Deps) *Social {
	deps = deps.withDefaults()
	reg := deps.Registry
	return &Social{
		deps:        deps,
		activeUsers: reg.MustGaugeVec("social_active_users_count", "Number of active users").WithLabelValues(),
		posts:       reg.MustCounterVec("social_posts_total", "Total number of posts", "platform"),
		likes:       reg.MustCounterVec("social_likes_total", "Total number of likes", "platform"),
		shares:      reg.MustCounterVec("social_shares_total", "Total number of shares", "platform"),
		comments:    reg.MustCounterVec("social_comments_total", "Total number of comments", "platform"),
		engagement:  reg.MustGaugeVec("social_engagement_rate_percent", "Engagement rate percentage", "platform"),
		followers:   reg.MustGaugeVec("social_followers_count", "Number of followers", "platform"),
	}
}

// Overview draws the platform cards and trending tags. Only the follower,
// engagement and active user gauges are published; the counters move on
// GenerateContent.
func (so *Social) Overview() SocialOverview {
	s := so.deps.Sampler
	o := SocialOverview{Platforms: make([]PlatformStats, 0, len(Platforms))}
	for _, p := range Platforms {
		prof := platformProfiles[p]
		st := PlatformStats{
			Platform:   p,
			Followers:  prof.followers.draw(s),
			Posts:      prof.posts.draw(s),
			Likes:      prof.likes.draw(s),
			Engagement: prof.engagement.draw(s),
		}
		if prof.comments {
			st.Comments = prof.interactions.draw(s)
		} else {
			st.Shares = prof.interactions.draw(s)
		}
		o.Platforms = append(o.Platforms, st)
	}
	o.ActiveUsers = IntRange{100, 1000}.draw(s)

	so.activeUsers.Set(float64(o.ActiveUsers))
	for _, st := range o.Platforms {
		so.followers.WithLabelValues(st.Platform).Set(float64(st.Followers))
		so.engagement.WithLabelValues(st.Platform).Set(st.Engagement)
	}
	o.Trending = so.trending()
	return o
}

// GenerateContent adds a burst of posts and interactions on every platform.
func (so *Social) GenerateContent() string {
	s := so.deps.Sampler
	for _, p := range Platforms {
		so.posts.WithLabelValues(p).Add(float64(IntRange{1, 5}.draw(s)))
		so.likes.WithLabelValues(p).Add(float64(IntRange{50, 1000}.draw(s)))
		so.shares.WithLabelValues(p).Add(float64(IntRange{10, 200}.draw(s)))
		so.comments.WithLabelValues(p).Add(float64(IntRange{5, 100}.draw(s)))
	}
	so.deps.pause(500*time.Millisecond, 1500*time.Millisecond)
	return "✅ Content generated for all social media platforms!"
}

// Refresh re-draws the gauges ahead of a scrape.
func (so *Social) Refresh() {
	s := so.deps.Sampler
	for _, p := range Platforms {
		so.followers.WithLabelValues(p).Set(float64(IntRange{5000, 100000}.draw(s)))
		so.engagement.WithLabelValues(p).Set(Range{1, 10}.draw(s))
	}
	so.activeUsers.Set(float64(IntRange{50, 500}.draw(s)))
}

func (so *Social) trending() []Hashtag {
	s := so.deps.Sampler
	tags := make([]Hashtag, 5)
	for i := range tags {
		tags[i] = Hashtag{
			Tag:   Hashtags[s.Pick(len(Hashtags))],
			Count: IntRange{1000, 50000}.draw(s),
		}
	}
	return tags
}
