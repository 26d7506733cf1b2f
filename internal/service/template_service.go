package service

import (
	"strings"

	"github.com/unclebandit/hudey-console/internal/model"
)

// RenderTemplate replaces every {key} in template with data[key]. Unknown
// placeholders are left as written.
func RenderTemplate(template string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(template, "{") {
		return template
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// ReplyData holds the placeholders available to a reply: {creator_name},
// {campaign_name} and {platform}.
func ReplyData(c *model.Campaign, e *model.CreatorEngagement) map[string]string {
	data := map[string]string{}
	if c != nil {
		data["campaign_name"] = c.Name
	}
	if e != nil {
		data["creator_name"] = e.DisplayName()
		if e.Platform != nil {
			data["platform"] = *e.Platform
		}
	}
	return data
}
