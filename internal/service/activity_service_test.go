package service

import (
	"context"
	"testing"
	"time"

	"crm/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type activityServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	activityRepo *activityRepoMock
	customerRepo *customerRepoMock
	events       *publisherMock
	svc          *activityService
	now          time.Time
	customer     *model.Customer
}

func (s *activityServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.activityRepo = new(activityRepoMock)
	s.customerRepo = new(customerRepoMock)
	s.events = new(publisherMock)
	s.now = time.Date(2025, 5, 12, 14, 0, 0, 0, time.UTC)
	s.customer = &model.Customer{ID: uuid.New(), CompanyName: "Acme Ltd", Phone: "05551112233", IsActive: true}

	s.svc = NewActivityService(s.activityRepo, s.customerRepo, inlineTx{}, s.events).(*activityService)
	s.svc.now = func() time.Time { return s.now }
}

func (s *activityServiceTestSuite) TearDownTest() {
	s.activityRepo.AssertExpectations(s.T())
	s.customerRepo.AssertExpectations(s.T())
	s.events.AssertExpectations(s.T())
}

func (s *activityServiceTestSuite) TestCreateActivityDefaults() {
	s.customerRepo.On("FindByID", s.ctx, s.customer.ID).Return(s.customer, nil).Once()
	s.activityRepo.On("Create", s.ctx, mock.MatchedBy(func(a *model.Activity) bool {
		return a.CustomerID == s.customer.ID && a.CreatedBy == model.DefaultActivityCreator && a.Attachments != nil
	})).Return(nil).Once()
	s.events.On("Publish", EventActivityCreated, mock.AnythingOfType("service.ActivityResponse")).Once()

	res, err := s.svc.CreateActivity(s.ctx, s.customer.ID.String(), CreateActivityRequest{
		Type:  string(model.ActivityTypeIntroCall),
		Title: " Ilk Gorusme ",
	})
	s.Require().NoError(err)
	s.Equal("Ilk Gorusme", res.Title)
	s.Equal(model.ActivityTypeIntroCall, res.Type)
	s.Equal("System", res.CreatedBy)
	s.NotNil(res.Attachments)
	s.Empty(res.Attachments)
	s.Equal(s.now, res.CreatedAt)
}

func (s *activityServiceTestSuite) TestCreateActivityWithAttachmentsAndAuthor() {
	s.customerRepo.On("FindByID", s.ctx, s.customer.ID).Return(s.customer, nil).Once()
	s.activityRepo.On("Create", s.ctx, mock.AnythingOfType("*model.Activity")).Return(nil).Once()
	s.events.On("Publish", EventActivityCreated, mock.Anything).Once()

	res, err := s.svc.CreateActivity(s.ctx, s.customer.ID.String(), CreateActivityRequest{
		Type:        string(model.ActivityTypeQuoteSent),
		Title:       "Teklif gonderildi",
		Description: "VRF sistem teklifi",
		CreatedBy:   "Sales Rep 1",
		Attachments: []AttachmentPayload{
			{URL: "https://files.example.com/q.pdf", Filename: "q.pdf", ContentType: "application/pdf", Size: 1024},
		},
	})
	s.Require().NoError(err)
	s.Equal("Sales Rep 1", res.CreatedBy)
	s.Equal([]model.Attachment{
		{URL: "https://files.example.com/q.pdf", Filename: "q.pdf", ContentType: "application/pdf", Size: 1024},
	}, res.Attachments)
}

func (s *activityServiceTestSuite) TestCreateActivityValidation() {
	cases := []CreateActivityRequest{
		{Type: string(model.ActivityTypeNote), Title: ""},
		{Type: string(model.ActivityTypeNote), Title: "   "},
		{Type: "", Title: "Call"},
		{Type: "MEETING", Title: "Call"},
		{Type: string(model.ActivityTypeNote), Title: "Call", Attachments: []AttachmentPayload{{Filename: "a.pdf"}}},
	}
	for _, req := range cases {
		_, err := s.svc.CreateActivity(s.ctx, s.customer.ID.String(), req)
		s.ErrorIs(err, ErrValidation, "request %+v must be rejected", req)
	}
	s.activityRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *activityServiceTestSuite) TestCreateActivityForUnknownCustomer() {
	missing := uuid.New()
	s.customerRepo.On("FindByID", s.ctx, missing).Return(nil, gorm.ErrRecordNotFound).Once()

	req := CreateActivityRequest{Type: string(model.ActivityTypeNote), Title: "Orphan"}
	_, err := s.svc.CreateActivity(s.ctx, missing.String(), req)
	s.ErrorIs(err, ErrNotFound)

	_, err = s.svc.CreateActivity(s.ctx, "not-a-uuid", req)
	s.ErrorIs(err, ErrNotFound)

	s.activityRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *activityServiceTestSuite) TestCreateActivityForInactiveCustomer() {
	s.customer.IsActive = false
	s.customerRepo.On("FindByID", s.ctx, s.customer.ID).Return(s.customer, nil).Once()
	s.activityRepo.On("Create", s.ctx, mock.AnythingOfType("*model.Activity")).Return(nil).Once()
	s.events.On("Publish", EventActivityCreated, mock.Anything).Once()

	_, err := s.svc.CreateActivity(s.ctx, s.customer.ID.String(), CreateActivityRequest{Type: "NOTE", Title: "After close"})
	s.NoError(err)
}

func (s *activityServiceTestSuite) TestListActivities() {
	activities := []model.Activity{
		{ID: uuid.New(), CustomerID: s.customer.ID, Type: model.ActivityTypeEmail, Title: "second"},
		{ID: uuid.New(), CustomerID: s.customer.ID, Type: model.ActivityTypeNote, Title: "first"},
	}
	s.activityRepo.On("ListByCustomer", s.ctx, s.customer.ID).Return(activities, nil).Once()

	res, err := s.svc.ListActivities(s.ctx, s.customer.ID.String())
	s.Require().NoError(err)
	s.Require().Len(res, 2)
	s.Equal("second", res[0].Title)
	s.Equal("first", res[1].Title)
}

func (s *activityServiceTestSuite) TestListActivitiesMalformedID() {
	res, err := s.svc.ListActivities(s.ctx, "nope")
	s.Require().NoError(err)
	s.NotNil(res)
	s.Empty(res)
	s.activityRepo.AssertNotCalled(s.T(), "ListByCustomer", mock.Anything, mock.Anything)
}

func TestActivityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(activityServiceTestSuite))
}
