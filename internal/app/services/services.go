package services

// Services defined in this package:
// - AuthService: registration, login, and refresh token rotation
// - UserService: profiles, password changes, and admin user listing
// - ClubService: club proposals, approval decisions, and memberships
// - EventService: events, registrations, and entry pass verification
// - ReportService: AI-drafted post-event reports
// - AnnouncementService: member-only club announcements
