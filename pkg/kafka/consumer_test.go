package kafka

import (
	"context"
	"testing"
	"time"
)

func TestNewConsumerRequiresBrokers(t *testing.T) {
	if _, err := NewConsumer(); err == nil {
		t.Fatal("expected error without brokers")
	}
	c, err := NewConsumer(WithConsumerBrokers([]string{"localhost:9092"}))
	if err != nil {
		t.Fatalf("NewConsumer: %v", err)
	}
	if c.cfg.WorkerCount != 1 || c.cfg.RetryMax != 3 {
		t.Errorf("unexpected defaults: %+v", c.cfg)
	}
}

func TestConsumerStopWaitsForReadersBeforeClosingChannel(t *testing.T) {
	c := &Consumer{
		cfg:      &ConsumerConfig{},
		stopChan: make(chan struct{}),
		msgChan:  make(chan *message, 1),
	}

	c.workerWg.Add(1)
	go c.messageWorker()

	// Feed the channel the way a reader loop does, sending until stopped.
	// Stop must not close msgChan while this goroutine can still send.
	c.readerWg.Add(1)
	go func() {
		defer c.readerWg.Done()
		for {
			select {
			case c.msgChan <- &message{topic: "economic.releases", data: []byte("{}")}:
			case <-c.stopChan:
				return
			}
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestBackoffWithJitterBounds(t *testing.T) {
	min, max := 50*time.Millisecond, 400*time.Millisecond
	for attempt := 1; attempt <= 6; attempt++ {
		got := backoffWithJitter(min, max, attempt)
		if got <= 0 || got > max {
			t.Errorf("attempt %d: backoff %v outside (0, %v]", attempt, got, max)
		}
	}
}
