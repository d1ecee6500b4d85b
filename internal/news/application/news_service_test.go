package application

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	identity "github.com/newshub/news-service/internal/identity/domain"
	"github.com/newshub/news-service/internal/news/domain"
	"github.com/newshub/news-service/internal/platform/apperror"
)

func asAppError(t *testing.T, err error) *apperror.AppError {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr
}

func activeIdentity(roles ...identity.Role) identity.Identity {
	return identity.Identity{
		ID:        uuid.New(),
		FirstName: "Jo",
		LastName:  "Reporter",
		Roles:     roles,
		Status:    identity.StatusActive,
	}
}

func TestCreateNewsAsAdmin(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()

	admin := activeIdentity(identity.RoleAdmin)
	author := activeIdentity(identity.RoleJournalist)
	f.gateway.addIdentity("admin-token", admin)
	f.gateway.addIdentity("author-token", author)

	news, err := f.news.CreateNewsAsAdmin(ctx, CreateNewsAdminParams{
		Title:    "Budget approved",
		Text:     "The council approved next year's budget.",
		AuthorID: author.ID,
	}, "admin-token")
	require.NoError(t, err)

	assert.Equal(t, author.ID, news.AuthorID)
	assert.Equal(t, admin.ID, news.CreatedBy)

	stored, err := f.newsRepo.FindByID(ctx, news.ID)
	require.NoError(t, err)
	assert.Equal(t, "Budget approved", stored.Title)

	revisions, err := f.revisionRepo.FindByNewsID(ctx, news.ID, revisionAll())
	require.NoError(t, err)
	require.Len(t, revisions, 1)
	assert.Equal(t, domain.ChangeKindInsert, revisions[0].Kind)
	assert.Equal(t, admin.ID, revisions[0].UserID)
	assert.Equal(t, 1, f.txManager.commits)
}

func TestCreateNewsAsAdminUnknownAuthor(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()

	admin := activeIdentity(identity.RoleAdmin)
	f.gateway.addIdentity("admin-token", admin)

	missing := uuid.New()
	_, err := f.news.CreateNewsAsAdmin(ctx, CreateNewsAdminParams{
		Title:    "Budget approved",
		Text:     "The council approved next year's budget.",
		AuthorID: missing,
	}, "admin-token")

	appErr := asAppError(t, err)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
	assert.Equal(t, "User not found with "+missing.String(), appErr.Message)
}

func TestCreateNewsAsJournalistForcesAuthorship(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()

	journalist := activeIdentity(identity.RoleJournalist)
	f.gateway.addIdentity("journo-token", journalist)

	news, err := f.news.CreateNewsAsJournalist(ctx, CreateNewsJournalistParams{
		Title: "Road closures",
		Text:  "Main street closes for repairs on Monday.",
	}, "journo-token")
	require.NoError(t, err)

	assert.Equal(t, journalist.ID, news.AuthorID)
	assert.Equal(t, journalist.ID, news.CreatedBy)
}

func TestCreateNewsDeniedForWrongRole(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()

	subscriber := activeIdentity(identity.RoleSubscriber)
	journalist := activeIdentity(identity.RoleJournalist)
	f.gateway.addIdentity("sub-token", subscriber)
	f.gateway.addIdentity("journo-token", journalist)

	params := CreateNewsAdminParams{Title: "Hello world", Text: "Some text here", AuthorID: subscriber.ID}

	// Journalists cannot use the admin path, subscribers cannot use either.
	_, err := f.news.CreateNewsAsAdmin(ctx, params, "journo-token")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.news.CreateNewsAsJournalist(ctx, CreateNewsJournalistParams{Title: "Hello world", Text: "Some text here"}, "sub-token")
	appErr := asAppError(t, err)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPStatus)
	assert.Equal(t, AccessDeniedMessage, appErr.Message)

	// A denied mutation must not write anything.
	count, err := f.newsRepo.Count(ctx, newsListAll())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateNewsMissingCredential(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()

	_, err := f.news.CreateNewsAsJournalist(ctx, CreateNewsJournalistParams{Title: "Hello world", Text: "Some text here"}, "")
	assert.ErrorIs(t, err, ErrMissingCredential)

	// Unknown credential reads the same as a missing one.
	_, err = f.news.CreateNewsAsJournalist(ctx, CreateNewsJournalistParams{Title: "Hello world", Text: "Some text here"}, "bogus")
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestCreateNewsInactiveCaller(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()

	dormant := activeIdentity(identity.RoleJournalist)
	dormant.Status = identity.StatusInactive
	f.gateway.addIdentity("dormant-token", dormant)

	_, err := f.news.CreateNewsAsJournalist(ctx, CreateNewsJournalistParams{Title: "Hello world", Text: "Some text here"}, "dormant-token")
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestCreateNewsGatewayDown(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()
	f.gateway.callerErr = errors.New("connection refused")

	_, err := f.news.CreateNewsAsJournalist(ctx, CreateNewsJournalistParams{Title: "Hello world", Text: "Some text here"}, "any-token")

	appErr := asAppError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPStatus)
	assert.Equal(t, "User service is unavailable!", appErr.Message)
}

func TestCreateNewsValidation(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()

	journalist := activeIdentity(identity.RoleJournalist)
	f.gateway.addIdentity("journo-token", journalist)

	_, err := f.news.CreateNewsAsJournalist(ctx, CreateNewsJournalistParams{Title: "Hi", Text: "Some text here"}, "journo-token")
	appErr := asAppError(t, err)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
}

func TestUpdateNewsAsJournalist(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()

	owner := activeIdentity(identity.RoleJournalist)
	rival := activeIdentity(identity.RoleJournalist)
	f.gateway.addIdentity("owner-token", owner)
	f.gateway.addIdentity("rival-token", rival)

	created, err := f.news.CreateNewsAsJournalist(ctx, CreateNewsJournalistParams{
		Title: "Road closures",
		Text:  "Main street closes for repairs on Monday.",
	}, "owner-token")
	require.NoError(t, err)

	// Another journalist is denied on a foreign article.
	_, err = f.news.UpdateNewsAsJournalist(ctx, created.ID, UpdateNewsJournalistParams{
		Title: "Hijacked title",
		Text:  "Replacement text here.",
	}, "rival-token")
	assert.ErrorIs(t, err, ErrAccessDenied)

	updated, err := f.news.UpdateNewsAsJournalist(ctx, created.ID, UpdateNewsJournalistParams{
		Title: "Road closures extended",
		Text:  "Repairs now run through Friday.",
	}, "owner-token")
	require.NoError(t, err)

	assert.Equal(t, "Road closures extended", updated.Title)
	assert.Equal(t, owner.ID, updated.AuthorID)
	assert.Equal(t, owner.ID, updated.UpdatedBy)

	revisions, err := f.revisionRepo.FindByNewsID(ctx, created.ID, revisionAll())
	require.NoError(t, err)
	require.Len(t, revisions, 2)
	assert.Equal(t, domain.ChangeKindUpdate, revisions[1].Kind)
}

func TestUpdateNewsAsAdminReassignsAuthor(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()

	admin := activeIdentity(identity.RoleAdmin)
	original := activeIdentity(identity.RoleJournalist)
	replacement := activeIdentity(identity.RoleJournalist)
	f.gateway.addIdentity("admin-token", admin)
	f.gateway.addIdentity("orig-token", original)
	f.gateway.addIdentity("repl-token", replacement)

	created, err := f.news.CreateNewsAsAdmin(ctx, CreateNewsAdminParams{
		Title:    "Budget approved",
		Text:     "The council approved next year's budget.",
		AuthorID: original.ID,
	}, "admin-token")
	require.NoError(t, err)

	updated, err := f.news.UpdateNewsAsAdmin(ctx, created.ID, UpdateNewsAdminParams{
		Title:    "Budget approved after revote",
		Text:     "The council approved the revised budget.",
		AuthorID: replacement.ID,
	}, "admin-token")
	require.NoError(t, err)

	assert.Equal(t, replacement.ID, updated.AuthorID)
	assert.Equal(t, created.CreatedBy, updated.CreatedBy)
}

func TestUpdateNewsNotFound(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()

	admin := activeIdentity(identity.RoleAdmin)
	f.gateway.addIdentity("admin-token", admin)

	missing := uuid.New()
	_, err := f.news.UpdateNewsAsAdmin(ctx, missing, UpdateNewsAdminParams{
		Title:    "Ghost article",
		Text:     "This article does not exist.",
		AuthorID: admin.ID,
	}, "admin-token")

	appErr := asAppError(t, err)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
	assert.Equal(t, "News not found with "+missing.String(), appErr.Message)
}

func TestDeleteNewsCascadesComments(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()

	journalist := activeIdentity(identity.RoleJournalist)
	subscriber := activeIdentity(identity.RoleSubscriber)
	f.gateway.addIdentity("journo-token", journalist)
	f.gateway.addIdentity("sub-token", subscriber)

	created, err := f.news.CreateNewsAsJournalist(ctx, CreateNewsJournalistParams{
		Title: "Road closures",
		Text:  "Main street closes for repairs on Monday.",
	}, "journo-token")
	require.NoError(t, err)

	comment, err := f.comments.CreateComment(ctx, CreateCommentParams{
		Text:   "Good to know, thanks.",
		NewsID: created.ID,
	}, "sub-token")
	require.NoError(t, err)

	require.NoError(t, f.news.DeleteNews(ctx, created.ID, "journo-token"))

	_, err = f.newsRepo.FindByID(ctx, created.ID)
	assert.Error(t, err)
	_, err = f.commentRepo.FindByID(ctx, comment.ID)
	assert.Error(t, err)

	// The log keeps the full lifecycle of the deleted article.
	revisions, err := f.revisionRepo.FindByNewsID(ctx, created.ID, revisionAll())
	require.NoError(t, err)
	require.Len(t, revisions, 2)
	assert.Equal(t, domain.ChangeKindDelete, revisions[1].Kind)
}

func TestDeleteNewsDeniedLeavesEverything(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()

	owner := activeIdentity(identity.RoleJournalist)
	rival := activeIdentity(identity.RoleJournalist)
	f.gateway.addIdentity("owner-token", owner)
	f.gateway.addIdentity("rival-token", rival)

	created, err := f.news.CreateNewsAsJournalist(ctx, CreateNewsJournalistParams{
		Title: "Road closures",
		Text:  "Main street closes for repairs on Monday.",
	}, "owner-token")
	require.NoError(t, err)

	err = f.news.DeleteNews(ctx, created.ID, "rival-token")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.newsRepo.FindByID(ctx, created.ID)
	assert.NoError(t, err)
}

func TestListNews(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()

	journalist := activeIdentity(identity.RoleJournalist)
	f.gateway.addIdentity("journo-token", journalist)

	for _, title := range []string{"Budget approved", "Budget rejected", "Weather warning"} {
		_, err := f.news.CreateNewsAsJournalist(ctx, CreateNewsJournalistParams{
			Title: title,
			Text:  "Details to follow shortly.",
		}, "journo-token")
		require.NoError(t, err)
	}

	items, count, err := f.news.ListNews(ctx, newsListAll())
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, 3, count)

	filtered, count, err := f.news.ListNews(ctx, listWithQuery("Budget"))
	require.NoError(t, err)
	assert.Len(t, filtered, 2)
	assert.Equal(t, 2, count)
}
