package usecase

var DestinationPath = destinationPath
