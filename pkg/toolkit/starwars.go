package toolkit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/harunnryd/saku/pkg/errorsx"
	"github.com/harunnryd/saku/pkg/tools"
)

const defaultSWAPIBaseURL = "https://swapi.dev/api"

// StarWarsClient queries a SWAPI-compatible people endpoint.
type StarWarsClient struct {
	BaseURL string
	Client  *http.Client
}

func NewStarWarsClient(baseURL string, timeout time.Duration) *StarWarsClient {
	if baseURL == "" {
		baseURL = defaultSWAPIBaseURL
	}
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &StarWarsClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

// StarWarsSpec declares the character search tool.
func StarWarsSpec() tools.Spec {
	return tools.Spec{
		Name:        "search_starwars_character",
		Description: "Search for a Star Wars character using the SWAPI (Star Wars API). Returns character details like height, mass, hair color, eye color, birth year, and gender.",
		Params: map[string]tools.Param{
			"name": {
				Type:        tools.TypeString,
				Description: "The name of the Star Wars character to search for (e.g., 'Luke Skywalker', 'Darth Vader', 'Leia')",
			},
		},
		Required: []string{"name"},
	}
}

// Handler adapts the client to the tool contract.
func (c *StarWarsClient) Handler() tools.Handler {
	return func(ctx context.Context, args tools.Args) (string, error) {
		return c.Search(ctx, args.String("name"))
	}
}

type swapiPerson struct {
	Name      string `json:"name"`
	Height    string `json:"height"`
	Mass      string `json:"mass"`
	HairColor string `json:"hair_color"`
	EyeColor  string `json:"eye_color"`
	BirthYear string `json:"birth_year"`
	Gender    string `json:"gender"`
}

type swapiSearchResponse struct {
	Results []swapiPerson `json:"results"`
}

// Search returns the first matching character formatted as a tool result.
// An empty result set is an error so the model sees a conversational
// miss rather than an empty string.
func (c *StarWarsClient) Search(ctx context.Context, name string) (string, error) {
	searchURL := c.BaseURL + "/people/?search=" + url.QueryEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", errorsx.Wrap(err, errorsx.ReasonLookupSend)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", errorsx.Wrap(err, errorsx.ReasonLookupSend)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lookup API returned status %d", resp.StatusCode)
	}

	var payload swapiSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", errorsx.Wrap(fmt.Errorf("decode lookup response: %w", err), errorsx.ReasonLookupSend)
	}
	if len(payload.Results) == 0 {
		return "", fmt.Errorf("no character found with name: %s", name)
	}

	person := payload.Results[0]
	return fmt.Sprintf(
		"Character: %s\nHeight: %s cm\nMass: %s kg\nHair Color: %s\nEye Color: %s\nBirth Year: %s\nGender: %s",
		person.Name, person.Height, person.Mass, person.HairColor, person.EyeColor, person.BirthYear, person.Gender,
	), nil
}
