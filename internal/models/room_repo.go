package models

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func (mdb *MongodbRepo) ListRooms(ctx context.Context) ([]*Room, error) {
	col, err := mdb.GetCollection(ctx, DbName, RoomColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	cursor, err := col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error finding rooms: %v", err)
	}
	defer cursor.Close(ctx)

	rooms := []*Room{}
	for cursor.Next(ctx) {
		var room Room
		if err := cursor.Decode(&room); err != nil {
			return nil, fmt.Errorf("error decoding room: %v", err)
		}
		rooms = append(rooms, &room)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return rooms, nil
}

func (mdb *MongodbRepo) GetRoomByID(ctx context.Context, id string) (*Room, error) {
	col, err := mdb.GetCollection(ctx, DbName, RoomColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var room Room
	err = col.FindOne(ctx, bson.M{"_id": oid}).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding room: %v", err)
	}

	return &room, nil
}

func (mdb *MongodbRepo) InsertRooms(ctx context.Context, rooms []*Room) error {
	col, err := mdb.GetCollection(ctx, DbName, RoomColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	docs := make([]interface{}, 0, len(rooms))
	for _, room := range rooms {
		docs = append(docs, room)
	}

	if _, err := col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert rooms: %v", err)
	}

	return nil
}

func (mdb *MongodbRepo) CountRooms(ctx context.Context) (int64, error) {
	col, err := mdb.GetCollection(ctx, DbName, RoomColName)
	if err != nil {
		return 0, fmt.Errorf("error getting collection: %v", err)
	}

	count, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count rooms: %v", err)
	}

	return count, nil
}
