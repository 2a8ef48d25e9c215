package entity

import "time"

// ContextSelectionItem is one picked node, flattened with its tree depth.
type ContextSelectionItem struct {
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	FaviconURL string    `json:"favicon_url,omitempty"`
	VisitedAt  time.Time `json:"visited_at"`
	Depth      int       `json:"depth"`
}

// ContextSelection is the set of pages a user picked to feed into a chat.
// Items keep forest pre-order regardless of the order they were picked in.
type ContextSelection struct {
	ID        string                 `json:"id"`
	CreatedAt time.Time              `json:"created_at"`
	Items     []ContextSelectionItem `json:"items"`
}

// URLs returns the selected URLs in order.
func (s *ContextSelection) URLs() []string {
	urls := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		urls = append(urls, item.URL)
	}
	return urls
}
