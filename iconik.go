package iconik

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultBaseURL is the iconik production host.
const DefaultBaseURL = "https://app.iconik.io"

// Default transport settings.
const (
	DefaultTimeout      = 30 * time.Second
	DefaultMaxRetries   = 3
	DefaultRetryDelay   = time.Second
	DefaultRetryBackoff = 2.0
)

// Client is the entry point to the iconik API. It owns one authenticated
// transport shared by every resource group; credentials and retry policy
// are fixed at construction.
type Client struct {
	tr    *Transport
	pages PageConfig

	assets             *AssetsService
	collections        *CollectionsService
	files              *FilesService
	metadata           *MetadataService
	search             *SearchService
	jobs               *JobsService
	transcode          *TranscodeService
	acls               *ACLsService
	auth               *AuthService
	users              *UsersService
	settings           *SettingsService
	notifications      *NotificationsService
	stats              *StatsService
	automations        *AutomationsService
	usersNotifications *UsersNotificationsService
}

// New creates an iconik client. appID must be the application UUID issued
// by iconik and authToken the matching token.
func New(appID, authToken string, opts ...Option) (*Client, error) {
	if appID == "" {
		return nil, fmt.Errorf("%w: app ID is required", ErrInvalidConfig)
	}
	if _, err := uuid.Parse(appID); err != nil {
		return nil, fmt.Errorf("%w: app ID must be a UUID: %v", ErrInvalidConfig, err)
	}
	if authToken == "" {
		return nil, fmt.Errorf("%w: auth token is required", ErrInvalidConfig)
	}

	options := clientOptions{
		baseURL:      DefaultBaseURL,
		timeout:      DefaultTimeout,
		maxRetries:   DefaultMaxRetries,
		retryDelay:   DefaultRetryDelay,
		retryBackoff: DefaultRetryBackoff,
	}
	for _, opt := range opts {
		opt(&options)
	}

	base, err := url.Parse(options.baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: invalid base URL %q", ErrInvalidConfig, options.baseURL)
	}

	logger := zerolog.Nop()
	if options.logger != nil {
		logger = *options.logger
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	tr := &Transport{
		baseURL:      base,
		appID:        appID,
		authToken:    authToken,
		httpClient:   httpClient,
		timeout:      options.timeout,
		maxRetries:   options.maxRetries,
		retryDelay:   options.retryDelay,
		retryBackoff: options.retryBackoff,
		logger:       logger,
	}

	pages := DefaultPageConfig()
	if options.pageConfig != nil {
		pages = options.pageConfig.withDefaults()
	}

	c := &Client{tr: tr, pages: pages}
	c.assets = &AssetsService{service{tr, "API/assets/v1/", pages, logger}}
	c.collections = &CollectionsService{service{tr, "API/assets/v1/", pages, logger}}
	c.files = &FilesService{service{tr, "API/files/v1/", pages, logger}}
	c.metadata = &MetadataService{service{tr, "API/metadata/v1/", pages, logger}}
	c.search = &SearchService{service{tr, "API/search/v1/", pages, logger}}
	c.jobs = &JobsService{service{tr, "API/jobs/v1/", pages, logger}}
	c.transcode = &TranscodeService{service{tr, "API/transcode/v1/", pages, logger}}
	c.acls = &ACLsService{service{tr, "API/acls/v1/", pages, logger}}
	c.auth = &AuthService{service{tr, "API/auth/v1/", pages, logger}}
	c.users = &UsersService{service{tr, "API/users/v1/", pages, logger}}
	c.settings = &SettingsService{service{tr, "API/settings/v1/", pages, logger}}
	c.notifications = &NotificationsService{service{tr, "API/notifications/v1/", pages, logger}}
	c.stats = &StatsService{service{tr, "API/stats/v1/", pages, logger}}
	c.automations = &AutomationsService{service{tr, "API/automations/v1/", pages, logger}}
	c.usersNotifications = &UsersNotificationsService{service{tr, "API/users-notifications/v1/", pages, logger}}
	return c, nil
}

// service carries what every resource group binding needs: the shared
// transport, the group's server prefix, and pagination defaults.
type service struct {
	tr     *Transport
	prefix string
	pages  PageConfig
	logger zerolog.Logger
}

// path joins the group prefix with a formatted path tail.
func (s *service) path(format string, args ...any) string {
	return s.prefix + fmt.Sprintf(format, args...)
}

// Assets returns the asset bindings.
func (c *Client) Assets() *AssetsService { return c.assets }

// Collections returns the collection bindings.
func (c *Client) Collections() *CollectionsService { return c.collections }

// Files returns the file and file-set bindings.
func (c *Client) Files() *FilesService { return c.files }

// Metadata returns the metadata view and field bindings.
func (c *Client) Metadata() *MetadataService { return c.metadata }

// Search returns the search bindings.
func (c *Client) Search() *SearchService { return c.search }

// Jobs returns the job bindings.
func (c *Client) Jobs() *JobsService { return c.jobs }

// Transcode returns the transcode bindings.
func (c *Client) Transcode() *TranscodeService { return c.transcode }

// ACLs returns the access-control bindings.
func (c *Client) ACLs() *ACLsService { return c.acls }

// Auth returns the token bindings.
func (c *Client) Auth() *AuthService { return c.auth }

// Users returns the user and group bindings.
func (c *Client) Users() *UsersService { return c.users }

// Settings returns the settings bindings.
func (c *Client) Settings() *SettingsService { return c.settings }

// Notifications returns the notification subscription bindings.
func (c *Client) Notifications() *NotificationsService { return c.notifications }

// Stats returns the statistics bindings.
func (c *Client) Stats() *StatsService { return c.stats }

// Automations returns the automation bindings.
func (c *Client) Automations() *AutomationsService { return c.automations }

// UsersNotifications returns the per-user notification bindings.
func (c *Client) UsersNotifications() *UsersNotificationsService { return c.usersNotifications }
