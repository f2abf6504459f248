package handler

import (
	"bizmatch/internal/usecase"
)

var (
	profileHandler    *ProfileHandler
	offeringHandler   *OfferingHandler
	matchingHandler   *MatchingHandler
	chatHandler       *ChatHandler
	engagementHandler *EngagementHandler
	ratingHandler     *RatingHandler
	healthHandler     *HealthHandler
)

func Setup(
	profileUseCase *usecase.ProfileUseCase,
	searchUseCase *usecase.SearchUseCase,
	matchingUseCase *usecase.MatchingUseCase,
	chatUseCase *usecase.ChatUseCase,
	engagementUseCase *usecase.EngagementUseCase,
	ratingUseCase *usecase.RatingUseCase,
) {
	profileHandler = NewProfileHandler(profileUseCase)
	offeringHandler = NewOfferingHandler(profileUseCase, searchUseCase)
	matchingHandler = NewMatchingHandler(matchingUseCase)
	chatHandler = NewChatHandler(chatUseCase)
	engagementHandler = NewEngagementHandler(engagementUseCase)
	ratingHandler = NewRatingHandler(ratingUseCase)
	healthHandler = NewHealthHandler()
}

func GetProfileHandler() *ProfileHandler {
	return profileHandler
}

func GetOfferingHandler() *OfferingHandler {
	return offeringHandler
}

func GetMatchingHandler() *MatchingHandler {
	return matchingHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetEngagementHandler() *EngagementHandler {
	return engagementHandler
}

func GetRatingHandler() *RatingHandler {
	return ratingHandler
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}
