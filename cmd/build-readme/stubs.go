package main

import (
	"context"

	"github.com/keshon/agorabot/internal/digest"
	"github.com/keshon/agorabot/internal/permission"
)

type stubStore struct{}

func (stubStore) DigestMessages(string) ([]digest.Message, error) { return nil, nil }
func (stubStore) AddToDigest(string, ...digest.Message) error     { return nil }
func (stubStore) ClearDigest(string) error                        { return nil }

type stubHistory struct{}

func (stubHistory) Message(context.Context, string, string) (digest.Message, error) {
	return digest.Message{}, nil
}

func (stubHistory) Between(context.Context, string, digest.Message, digest.Message) ([]digest.Message, error) {
	return nil, nil
}

func (stubHistory) React(context.Context, string, string, string) error { return nil }

type stubSender struct{}

func (stubSender) SendDigest(context.Context, string, string) error { return nil }

type stubGrants struct{}

func (stubGrants) Grants(string) ([]string, error) { return nil, nil }
func (stubGrants) Grant(string, string) error      { return nil }
func (stubGrants) Revoke(string, string) error     { return nil }

func stubChecker() *permission.Checker { return permission.NewChecker(stubGrants{}, nil) }

type stubJobs struct{}

func (stubJobs) Status() string { return "" }
