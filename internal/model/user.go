package model

import "time"

// User represents an application user record as stored in the `users`
// table.  Users both book rooms and host them; there is no separate
// role column, ownership is expressed through foreign keys.  The json
// tags are omitted because these structs are used by the repository
// layer; handlers define their own response types.
//
// Fields:
//  ID              – primary key identifier.
//  Email           – unique email address.
//  PasswordHash    – bcrypt hashed password.
//  Name            – display name.
//  Phone           – contact phone number (nullable).
//  ProfileImageURL – avatar URL (nullable).
//  CreatedAt       – timestamp of creation.
//  UpdatedAt       – timestamp of last update.
//  DeletedAt       – when set, the account is deactivated and sign-in
//                    is refused.
type User struct {
	ID              uint64     // users.id
	Email           string     // users.email
	PasswordHash    string     // users.password
	Name            string     // users.name
	Phone           *string    // users.phone (nullable)
	ProfileImageURL *string    // users.profile_image_url (nullable)
	CreatedAt       time.Time  // users.created_at
	UpdatedAt       time.Time  // users.updated_at
	DeletedAt       *time.Time // users.deleted_at (nullable)
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user; only the SHA-256 hash of the raw
// token is stored.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
