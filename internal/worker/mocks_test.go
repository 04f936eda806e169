package worker

import (
	"context"
	"errors"

	"arty/backend/features/job"
	"arty/backend/internal/generate"
	"arty/backend/internal/settings"
)

type mockGenerator struct {
	lastReq generate.Request
	result  generate.Result
	err     error
	calls   int
}

func (m *mockGenerator) Generate(_ context.Context, req generate.Request) (generate.Result, error) {
	m.calls++
	m.lastReq = req
	return m.result, m.err
}

type statusCall struct {
	id        string
	status    string
	generated int
	errMsg    string
}

type mockInterviews struct {
	statusCalls []statusCall
	resultCalls []statusCall
	statusErr   error
}

func (m *mockInterviews) UpdateStatus(_ context.Context, id, status string) error {
	m.statusCalls = append(m.statusCalls, statusCall{id: id, status: status})
	return m.statusErr
}

func (m *mockInterviews) SetResult(_ context.Context, id, status string, generated int, errMsg string) error {
	m.resultCalls = append(m.resultCalls, statusCall{id: id, status: status, generated: generated, errMsg: errMsg})
	return nil
}

type mockJobRepo struct {
	saved   []*job.Job
	saveErr error
}

func (m *mockJobRepo) Save(_ context.Context, j *job.Job) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	j.ID = "job-new"
	m.saved = append(m.saved, j)
	return nil
}

func (m *mockJobRepo) List(context.Context) ([]job.Job, error) { return nil, nil }

func (m *mockJobRepo) Get(context.Context, string) (*job.Job, error) {
	return nil, errors.New("not implemented")
}

func (m *mockJobRepo) Delete(context.Context, string) error { return nil }

func (m *mockJobRepo) Count(context.Context) (int, error) { return 0, nil }

type mockSettings struct {
	result *settings.Settings
	err    error
}

func (m *mockSettings) Get(context.Context) (*settings.Settings, error) {
	return m.result, m.err
}
