package casdoor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/atlas-lingua/portal-service/internal/cache"
	"github.com/atlas-lingua/portal-service/internal/models"
	"github.com/atlas-lingua/portal-service/internal/repositories"
)

// CasdoorConfig holds the configuration for Casdoor connection
type CasdoorConfig struct {
	Endpoint         string
	ClientID         string
	ClientSecret     string
	Certificate      string
	OrganizationName string
	ApplicationName  string
}

// identityProvider validates tokens and provisions users against Casdoor.
// Identity lookups are cached in Redis; authorization roles never are — the
// role gate reads the profile record from the key-value store per request.
type identityProvider struct {
	client      *casdoorsdk.Client
	config      CasdoorConfig
	identities  *cache.CacheHelper
	existsCache *cache.CacheHelper
}

func NewIdentityProvider(config CasdoorConfig, redisClient *redis.Client) repositories.IdentityProvider {
	client := casdoorsdk.NewClient(
		config.Endpoint,
		config.ClientID,
		config.ClientSecret,
		config.Certificate,
		config.OrganizationName,
		config.ApplicationName,
	)

	return &identityProvider{
		client:      client,
		config:      config,
		identities:  cache.NewCacheHelper(redisClient, cache.IdentityCacheConfig.Prefix),
		existsCache: cache.NewCacheHelper(redisClient, cache.ExistsCacheConfig.Prefix),
	}
}

// ===== TOKEN VALIDATION =====

func (p *identityProvider) ValidateToken(ctx context.Context, token string) (*models.Identity, error) {
	claims, err := p.client.ParseJwtToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repositories.ErrInvalidToken, err)
	}

	if claims.Id == "" {
		return nil, fmt.Errorf("%w: token carries no subject", repositories.ErrInvalidToken)
	}

	// The claims already carry the user snapshot at token-issuance time; no
	// provider round trip is needed to authenticate.
	identity := &models.Identity{
		ID:            claims.Id,
		Email:         claims.User.Email,
		DisplayName:   claims.User.DisplayName,
		Phone:         claims.User.Phone,
		EmailVerified: claims.User.EmailVerified,
	}
	if created, err := time.Parse(time.RFC3339, claims.User.CreatedTime); err == nil {
		identity.CreatedAt = created
	}

	p.cacheIdentity(ctx, identity)
	return identity, nil
}

// ===== IDENTITY PROVISIONING =====

func (p *identityProvider) CreateIdentity(ctx context.Context, req repositories.CreateIdentityRequest) (*models.Identity, error) {
	taken, err := p.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: %s", repositories.ErrIdentityConflict, req.Email)
	}

	now := time.Now().UTC()
	user := &casdoorsdk.User{
		Owner:             p.config.OrganizationName,
		Name:              localPartOrID(req.Email),
		Id:                uuid.New().String(),
		Type:              "normal-user",
		CreatedTime:       now.Format(time.RFC3339),
		DisplayName:       req.DisplayName,
		Email:             req.Email,
		Phone:             req.Phone,
		Password:          req.Password,
		SignupApplication: p.config.ApplicationName,
	}

	ok, err := p.client.AddUser(user)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repositories.ErrProviderUnavailable, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: provider refused user %s", repositories.ErrIdentityRejected, req.Email)
	}

	identity := &models.Identity{
		ID:          user.Id,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Phone:       user.Phone,
		CreatedAt:   now,
	}

	p.cacheIdentity(ctx, identity)
	p.existsCache.SetString(ctx, "email:"+req.Email, "true", cache.ExistsCacheConfig.TTL)

	return identity, nil
}

func (p *identityProvider) DeleteIdentity(ctx context.Context, id string) error {
	casdoorUser, err := p.client.GetUserByUserId(id)
	if err != nil {
		return fmt.Errorf("%w: %v", repositories.ErrProviderUnavailable, err)
	}
	if casdoorUser == nil {
		return nil
	}

	if _, err := p.client.DeleteUser(casdoorUser); err != nil {
		return fmt.Errorf("%w: delete user: %v", repositories.ErrProviderUnavailable, err)
	}

	p.identities.Delete(ctx, "id:"+id, "email:"+casdoorUser.Email)
	p.existsCache.Delete(ctx, "email:"+casdoorUser.Email)
	return nil
}

func (p *identityProvider) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if cached, err := p.existsCache.GetString(ctx, "email:"+email); err == nil {
		return cached == "true", nil
	}

	casdoorUser, err := p.client.GetUserByEmail(email)
	if err != nil {
		// The SDK reports "user doesn't exist" as an error; treat only
		// transport-level failures as upstream errors.
		if strings.Contains(strings.ToLower(err.Error()), "doesn't exist") {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", repositories.ErrProviderUnavailable, err)
	}

	exists := casdoorUser != nil
	p.existsCache.SetString(ctx, "email:"+email, fmt.Sprintf("%t", exists), cache.ExistsCacheConfig.TTL)
	return exists, nil
}

// ===== READ OPERATIONS =====

func (p *identityProvider) GetByID(ctx context.Context, id string) (*models.Identity, error) {
	var cached models.Identity
	if err := p.identities.Get(ctx, "id:"+id, &cached); err == nil {
		return &cached, nil
	}

	casdoorUser, err := p.client.GetUserByUserId(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repositories.ErrProviderUnavailable, err)
	}
	if casdoorUser == nil {
		return nil, repositories.ErrKeyNotFound
	}

	identity := &models.Identity{
		ID:            casdoorUser.Id,
		Email:         casdoorUser.Email,
		DisplayName:   casdoorUser.DisplayName,
		Phone:         casdoorUser.Phone,
		EmailVerified: casdoorUser.EmailVerified,
	}
	if created, err := time.Parse(time.RFC3339, casdoorUser.CreatedTime); err == nil {
		identity.CreatedAt = created
	}

	p.cacheIdentity(ctx, identity)
	return identity, nil
}

// ===== CACHE HELPERS =====

func (p *identityProvider) cacheIdentity(ctx context.Context, identity *models.Identity) {
	ttl := cache.IdentityCacheConfig.TTL
	p.identities.Set(ctx, "id:"+identity.ID, identity, ttl)
	if identity.Email != "" {
		p.identities.Set(ctx, "email:"+identity.Email, identity, ttl)
	}
}

// localPartOrID derives a Casdoor username from the signup email.
func localPartOrID(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return uuid.New().String()
}
