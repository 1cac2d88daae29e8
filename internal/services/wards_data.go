package services

import "github.com/aawaaz/waterlogging-server/internal/models"

// DelhiWards is the static ward dataset behind the flood-risk map.
var DelhiWards = []models.Ward{
	{ID: 1, Name: "Moti Nagar", District: "West Delhi", Rainfall: 95, DrainageScore: 25, PastIncidents: 12, X: 250, Y: 420, Lat: 28.6602, Lng: 77.1386},
	{ID: 2, Name: "Pul Prahladpur", District: "South Delhi", Rainfall: 88, DrainageScore: 30, PastIncidents: 15, X: 400, Y: 680, Lat: 28.5005, Lng: 77.2756},
	{ID: 3, Name: "Sangam Vihar", District: "South Delhi", Rainfall: 92, DrainageScore: 20, PastIncidents: 18, X: 450, Y: 640, Lat: 28.5004, Lng: 77.2435},
	{ID: 4, Name: "Mundka", District: "West Delhi", Rainfall: 82, DrainageScore: 28, PastIncidents: 10, X: 200, Y: 380, Lat: 28.6832, Lng: 77.0281},
	{ID: 5, Name: "Palam", District: "South West Delhi", Rainfall: 78, DrainageScore: 32, PastIncidents: 9, X: 280, Y: 600, Lat: 28.5524, Lng: 77.0734},
	{ID: 6, Name: "Najafgarh", District: "South West Delhi", Rainfall: 72, DrainageScore: 42, PastIncidents: 8, X: 220, Y: 560, Lat: 28.6092, Lng: 76.9798},
	{ID: 7, Name: "Mehrauli", District: "South Delhi", Rainfall: 68, DrainageScore: 45, PastIncidents: 7, X: 360, Y: 620, Lat: 28.5244, Lng: 77.1855},
	{ID: 8, Name: "Dwarka", District: "South West Delhi", Rainfall: 70, DrainageScore: 40, PastIncidents: 6, X: 240, Y: 520, Lat: 28.5921, Lng: 77.0460},
	{ID: 9, Name: "Shahdara", District: "North East Delhi", Rainfall: 65, DrainageScore: 48, PastIncidents: 7, X: 530, Y: 220, Lat: 28.6692, Lng: 77.2868},
	{ID: 10, Name: "Rohini", District: "North West Delhi", Rainfall: 62, DrainageScore: 50, PastIncidents: 5, X: 280, Y: 180, Lat: 28.7496, Lng: 77.0674},
	{ID: 11, Name: "Model Town", District: "North Delhi", Rainfall: 58, DrainageScore: 55, PastIncidents: 4, X: 380, Y: 160, Lat: 28.7185, Lng: 77.1910},
	{ID: 12, Name: "Karol Bagh", District: "Central Delhi", Rainfall: 55, DrainageScore: 60, PastIncidents: 4, X: 350, Y: 320, Lat: 28.6519, Lng: 77.1909},
	{ID: 13, Name: "Vasant Vihar", District: "South West Delhi", Rainfall: 52, DrainageScore: 62, PastIncidents: 3, X: 310, Y: 540, Lat: 28.5672, Lng: 77.1589},
	{ID: 14, Name: "Laxmi Nagar", District: "East Delhi", Rainfall: 50, DrainageScore: 58, PastIncidents: 3, X: 540, Y: 350, Lat: 28.6304, Lng: 77.2777},
	{ID: 15, Name: "Janakpuri", District: "West Delhi", Rainfall: 48, DrainageScore: 65, PastIncidents: 2, X: 220, Y: 450, Lat: 28.6219, Lng: 77.0834},
	{ID: 16, Name: "Connaught Place", District: "Central Delhi", Rainfall: 42, DrainageScore: 78, PastIncidents: 1, X: 380, Y: 350, Lat: 28.6315, Lng: 77.2167},
	{ID: 17, Name: "Defence Colony", District: "South Delhi", Rainfall: 38, DrainageScore: 82, PastIncidents: 1, X: 430, Y: 550, Lat: 28.5706, Lng: 77.2368},
	{ID: 18, Name: "Mayur Vihar", District: "East Delhi", Rainfall: 35, DrainageScore: 85, PastIncidents: 0, X: 550, Y: 420, Lat: 28.6079, Lng: 77.2991},
	{ID: 19, Name: "Pitampura", District: "North West Delhi", Rainfall: 32, DrainageScore: 88, PastIncidents: 1, X: 320, Y: 200, Lat: 28.6912, Lng: 77.1314},
	{ID: 20, Name: "Greater Kailash", District: "South Delhi", Rainfall: 30, DrainageScore: 90, PastIncidents: 0, X: 410, Y: 580, Lat: 28.5494, Lng: 77.2432},
}
